// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scripting loads externally defined commands from Lua files, the
// same plugin mechanism the teacher exposes: a script sets a handful of
// globals (command, module, categories, description, sync,
// keyExtractionFunc, handlerFunc) and gets registered as an ordinary
// command.Command. The handler's Lua environment is given a single "call"
// bridge into the rest of the registry rather than direct set/get/del
// bindings, since every key in this engine lives behind a shard a Lua
// script has no business reaching into directly. Any command invoked
// through that bridge always runs with ScriptContext set, so set-family
// handlers apply their deterministic ordering (see sortIfScripted in
// internal/modules/set) no matter how deep inside a script they're
// called from.
package scripting

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mwinuka/setshard/internal/command"
)

// LoadCommand loads the Lua file at path and returns the command.Command it
// defines. registry is consulted by the script's call() bridge to dispatch
// into other commands (most usefully the set family) from within the
// script's own handler.
func LoadCommand(path string, registry map[string]command.Command) (command.Command, error) {
	L := lua.NewState()

	if err := L.DoFile(path); err != nil {
		return command.Command{}, fmt.Errorf("load lua script %s: %w", path, err)
	}

	name, ok := L.GetGlobal("command").(lua.LString)
	if !ok || name.String() == "" {
		return command.Command{}, errors.New("lua script must set a non-empty global 'command'")
	}
	module, ok := L.GetGlobal("module").(lua.LString)
	if !ok {
		return command.Command{}, errors.New("lua script must set a global 'module' string")
	}
	description, _ := L.GetGlobal("description").(lua.LString)
	sync := L.GetGlobal("sync") == lua.LTrue

	var categories []string
	if tbl, ok := L.GetGlobal("categories").(*lua.LTable); ok {
		for i := 1; i <= tbl.Len(); i++ {
			categories = append(categories, tbl.RawGetInt(i).String())
		}
	}

	if L.GetGlobal("keyExtractionFunc").Type() != lua.LTFunction {
		return command.Command{}, errors.New("lua script must define a keyExtractionFunc")
	}
	if L.GetGlobal("handlerFunc").Type() != lua.LTFunction {
		return command.Command{}, errors.New("lua script must define a handlerFunc")
	}

	return command.Command{
		Command:           name.String(),
		Module:            module.String(),
		Categories:        categories,
		Description:       description.String(),
		Sync:              sync,
		KeyExtractionFunc: buildKeyExtractionFunc(L),
		HandlerFunc:       buildHandlerFunc(L, registry),
	}, nil
}

func buildKeyExtractionFunc(L *lua.LState) command.KeyExtractionFunc {
	return func(cmd []string) (command.KeyExtractionFuncResult, error) {
		cmdTable := L.NewTable()
		for i, s := range cmd {
			cmdTable.RawSetInt(i+1, lua.LString(s))
		}
		if err := L.CallByParam(lua.P{
			Fn:      L.GetGlobal("keyExtractionFunc"),
			NRet:    1,
			Protect: true,
		}, cmdTable); err != nil {
			return command.KeyExtractionFuncResult{}, err
		}
		defer L.Pop(1)

		ret := L.Get(-1)
		if errMsg, ok := ret.(lua.LString); ok {
			return command.KeyExtractionFuncResult{}, errors.New(errMsg.String())
		}
		tbl, ok := ret.(*lua.LTable)
		if !ok {
			return command.KeyExtractionFuncResult{}, errors.New("keyExtractionFunc must return a table or an error string")
		}
		return command.KeyExtractionFuncResult{
			ReadKeys:  tableStrings(tbl.RawGetString("readKeys")),
			WriteKeys: tableStrings(tbl.RawGetString("writeKeys")),
		}, nil
	}
}

func buildHandlerFunc(L *lua.LState, registry map[string]command.Command) command.HandlerFunc {
	return func(params command.Params) ([]byte, error) {
		cmdTable := L.NewTable()
		for i, s := range params.Command {
			cmdTable.RawSetInt(i+1, lua.LString(s))
		}

		call := L.NewFunction(func(state *lua.LState) int {
			n := state.GetTop()
			args := make([]string, 0, n)
			for i := 1; i <= n; i++ {
				args = append(args, state.CheckString(i))
			}
			if len(args) == 0 {
				state.Push(lua.LNil)
				state.Push(lua.LString("call requires at least a command name"))
				return 2
			}
			target, ok := registry[normalize(args[0])]
			if !ok {
				state.Push(lua.LNil)
				state.Push(lua.LString(fmt.Sprintf("unknown command %q", args[0])))
				return 2
			}
			if _, err := target.KeyExtractionFunc(args); err != nil {
				state.Push(lua.LNil)
				state.Push(lua.LString(err.Error()))
				return 2
			}
			out, err := target.HandlerFunc(command.Params{
				Context:       params.Context,
				Command:       args,
				Coordinator:   params.Coordinator,
				Config:        params.Config,
				Cluster:       params.Cluster,
				ScriptContext: true,
			})
			if err != nil {
				state.Push(lua.LNil)
				state.Push(lua.LString(err.Error()))
				return 2
			}
			state.Push(lua.LString(string(out)))
			state.Push(lua.LNil)
			return 2
		})

		if err := L.CallByParam(lua.P{
			Fn:      L.GetGlobal("handlerFunc"),
			NRet:    2,
			Protect: true,
		}, cmdTable, call); err != nil {
			return nil, err
		}
		defer L.Pop(2)

		if errMsg, ok := L.Get(-1).(lua.LString); ok && errMsg.String() != "" {
			return nil, errors.New(errMsg.String())
		}
		return []byte(L.Get(-2).String()), nil
	}
}

func tableStrings(v lua.LValue) []string {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	out := make([]string, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		out = append(out, tbl.RawGetInt(i).String())
	}
	return out
}

func normalize(cmdName string) string {
	b := []byte(cmdName)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
