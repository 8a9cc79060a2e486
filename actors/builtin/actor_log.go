package builtin

import (
	"sync"

	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/cpvesting/vesting-actors/actors/runtime"
)

// Minimum log level per actor code. Actors without an entry use the host's default.
var actorLogLevels = struct {
	sync.RWMutex
	byCode map[cid.Cid]rtt.LogLevel
}{byCode: make(map[cid.Cid]rtt.LogLevel)}

func SetActorsLogLevel(level rtt.LogLevel, actors ...runtime.VMActor) {
	actorLogLevels.Lock()
	defer actorLogLevels.Unlock()
	for _, a := range actors {
		actorLogLevels.byCode[a.Code()] = level
	}
}

func GetActorLogLevel(actor runtime.VMActor, defValue rtt.LogLevel) rtt.LogLevel {
	actorLogLevels.RLock()
	defer actorLogLevels.RUnlock()
	if level, ok := actorLogLevels.byCode[actor.Code()]; ok {
		return level
	}
	return defValue
}

// ActorLogEnabled reports whether a message at level passes the actor's threshold.
func ActorLogEnabled(actor runtime.VMActor, level, defValue rtt.LogLevel) bool {
	return level >= GetActorLogLevel(actor, defValue)
}

// ResetActorsLogLevel drops all per-actor overrides.
func ResetActorsLogLevel() {
	actorLogLevels.Lock()
	defer actorLogLevels.Unlock()
	actorLogLevels.byCode = make(map[cid.Cid]rtt.LogLevel)
}
