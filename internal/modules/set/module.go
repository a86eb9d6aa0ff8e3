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

package set

import (
	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/constants"
)

// Commands returns every command this module contributes to the registry.
func Commands() []command.Command {
	return []command.Command{
		{
			Command:           "sadd",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.WriteCategory, constants.FastCategory},
			Description:       `(SADD key member [member ...]) Add one or more members to a set.`,
			Sync:              true,
			KeyExtractionFunc: saddKeyFunc,
			HandlerFunc:       handleSADD,
		},
		{
			Command:           "srem",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.WriteCategory, constants.FastCategory},
			Description:       `(SREM key member [member ...]) Remove one or more members from a set.`,
			Sync:              true,
			KeyExtractionFunc: sremKeyFunc,
			HandlerFunc:       handleSREM,
		},
		{
			Command:           "sismember",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       `(SISMEMBER key member) Return whether member is in the set at key.`,
			KeyExtractionFunc: sismemberKeyFunc,
			HandlerFunc:       handleSISMEMBER,
		},
		{
			Command:           "smismember",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       `(SMISMEMBER key member [member ...]) Return membership of each member in one call.`,
			KeyExtractionFunc: smismemberKeyFunc,
			HandlerFunc:       handleSMISMEMBER,
		},
		{
			Command:           "scard",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       `(SCARD key) Return the cardinality of the set at key.`,
			KeyExtractionFunc: scardKeyFunc,
			HandlerFunc:       handleSCARD,
		},
		{
			Command:           "smembers",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       `(SMEMBERS key) Return all members of the set at key.`,
			KeyExtractionFunc: smembersKeyFunc,
			HandlerFunc:       handleSMEMBERS,
		},
		{
			Command:           "srandmember",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       `(SRANDMEMBER key [count]) Return one or more members without removing them.`,
			KeyExtractionFunc: srandmemberKeyFunc,
			HandlerFunc:       handleSRANDMEMBER,
		},
		{
			Command:           "spop",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       `(SPOP key [count]) Remove and return one or more members from the set.`,
			Sync:              true,
			KeyExtractionFunc: spopKeyFunc,
			HandlerFunc:       handleSPOP,
		},
		{
			Command:           "smove",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.WriteCategory, constants.FastCategory},
			Description:       `(SMOVE source destination member) Move member from source set to destination set.`,
			Sync:              true,
			KeyExtractionFunc: smoveKeyFunc,
			HandlerFunc:       handleSMOVE,
		},
		{
			Command:           "sunion",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       `(SUNION key [key ...]) Return the union of the given sets.`,
			KeyExtractionFunc: sunionKeyFunc,
			HandlerFunc:       handleSUNION,
		},
		{
			Command:           "sunionstore",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       `(SUNIONSTORE destination key [key ...]) Store the union of the given sets in destination.`,
			Sync:              true,
			KeyExtractionFunc: sunionstoreKeyFunc,
			HandlerFunc:       handleSUNIONSTORE,
		},
		{
			Command:           "sinter",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       `(SINTER key [key ...]) Return the intersection of the given sets.`,
			KeyExtractionFunc: sinterKeyFunc,
			HandlerFunc:       handleSINTER,
		},
		{
			Command:           "sinterstore",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       `(SINTERSTORE destination key [key ...]) Store the intersection of the given sets in destination.`,
			Sync:              true,
			KeyExtractionFunc: sinterstoreKeyFunc,
			HandlerFunc:       handleSINTERSTORE,
		},
		{
			Command:           "sintercard",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       `(SINTERCARD numkeys key [key ...] [LIMIT limit]) Return the cardinality of the intersection, capped at limit when LIMIT is given.`,
			KeyExtractionFunc: sintercardKeyFunc,
			HandlerFunc:       handleSINTERCARD,
		},
		{
			Command:           "sdiff",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       `(SDIFF key [key ...]) Return the difference between the first set and the rest.`,
			KeyExtractionFunc: sdiffKeyFunc,
			HandlerFunc:       handleSDIFF,
		},
		{
			Command:           "sdiffstore",
			Module:            constants.SetModule,
			Categories:        []string{constants.SetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       `(SDIFFSTORE destination key [key ...]) Store the difference between the first set and the rest in destination.`,
			Sync:              true,
			KeyExtractionFunc: sdiffstoreKeyFunc,
			HandlerFunc:       handleSDIFFSTORE,
		},
	}
}
