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

package constants

const (
	SetModule     = "set"
	GenericModule = "generic"
)

const (
	SetCategory        = "set"
	ReadCategory       = "read"
	WriteCategory      = "write"
	FastCategory       = "fast"
	SlowCategory       = "slow"
	KeyspaceCategory   = "keyspace"
	ConnectionCategory = "connection"
)

const (
	OkResponse        = "+OK\r\n"
	WrongArgsResponse = "wrong number of arguments"
	WrongTypeResponse = "WRONGTYPE Operation against a key holding the wrong kind of value"
	NotIntegerResponse = "ERR value is not an integer or out of range"
)

// MaxIntsetEntriesHardCap bounds set_max_intset_entries regardless of what a
// loaded config asks for (spec invariant 2: "bounded above by 65536").
const MaxIntsetEntriesHardCap = 1 << 16
