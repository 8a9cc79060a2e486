package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var VestingActorCodeID cid.Cid

var builtinActors map[cid.Cid]string

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	makeBuiltin := func(s string) cid.Cid {
		c, err := builder.Sum([]byte(s))
		if err != nil {
			panic(err)
		}
		return c
	}

	VestingActorCodeID = makeBuiltin("vesting/1/account")

	builtinActors = map[cid.Cid]string{
		VestingActorCodeID: "vesting",
	}
}

// ActorNameByCode returns the name of the builtin actor with the given code, or "<unknown>".
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	}
	name, ok := builtinActors[code]
	if !ok {
		return "<unknown>"
	}
	return name
}

// IsBuiltinActor tests whether a code CID represents a builtin actor.
func IsBuiltinActor(code cid.Cid) bool {
	_, ok := builtinActors[code]
	return ok
}
