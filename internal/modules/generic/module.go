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

package generic

import (
	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/constants"
)

func Commands() []command.Command {
	return []command.Command{
		{
			Command:           "set",
			Module:            constants.GenericModule,
			Categories:        []string{constants.WriteCategory, constants.FastCategory, constants.KeyspaceCategory},
			Description:       `(SET key value) Set the value of a key, overwriting any existing value and type.`,
			Sync:              true,
			KeyExtractionFunc: setKeyFunc,
			HandlerFunc:       handleSET,
		},
		{
			Command:           "get",
			Module:            constants.GenericModule,
			Categories:        []string{constants.ReadCategory, constants.FastCategory, constants.KeyspaceCategory},
			Description:       `(GET key) Get the string value of a key.`,
			KeyExtractionFunc: getKeyFunc,
			HandlerFunc:       handleGET,
		},
		{
			Command:           "del",
			Module:            constants.GenericModule,
			Categories:        []string{constants.WriteCategory, constants.FastCategory, constants.KeyspaceCategory},
			Description:       `(DEL key [key ...]) Delete one or more keys.`,
			Sync:              true,
			KeyExtractionFunc: delKeyFunc,
			HandlerFunc:       handleDEL,
		},
		{
			Command:           "exists",
			Module:            constants.GenericModule,
			Categories:        []string{constants.ReadCategory, constants.FastCategory, constants.KeyspaceCategory},
			Description:       `(EXISTS key [key ...]) Count how many of the given keys exist.`,
			KeyExtractionFunc: existsKeyFunc,
			HandlerFunc:       handleEXISTS,
		},
		{
			Command:           "ping",
			Module:            constants.GenericModule,
			Categories:        []string{constants.ConnectionCategory, constants.FastCategory},
			Description:       `(PING [message]) Ping the server; echoes message if given.`,
			KeyExtractionFunc: pingKeyFunc,
			HandlerFunc:       handlePING,
		},
		{
			Command:           "cluster",
			Module:            constants.GenericModule,
			Categories:        []string{constants.ConnectionCategory, constants.SlowCategory},
			Description:       `(CLUSTER NODES) List the peers visible to this node's gossip layer.`,
			KeyExtractionFunc: clusterKeyFunc,
			HandlerFunc:       handleCLUSTER,
		},
	}
}
