package builtin

import (
	"fmt"
	"strings"
)

// MessageAccumulator collects invariant violations found while checking state.
// Accumulators derived with WithPrefix share the parent's messages.
type MessageAccumulator struct {
	prefix string
	msgs   *[]string
}

func (ma *MessageAccumulator) list() *[]string {
	if ma.msgs == nil {
		ma.msgs = new([]string)
	}
	return ma.msgs
}

// WithPrefix returns an accumulator that records into the same list, prefixing each message.
func (ma *MessageAccumulator) WithPrefix(format string, args ...interface{}) *MessageAccumulator {
	return &MessageAccumulator{
		prefix: ma.prefix + fmt.Sprintf(format, args...),
		msgs:   ma.list(),
	}
}

func (ma *MessageAccumulator) IsEmpty() bool {
	return ma.msgs == nil || len(*ma.msgs) == 0
}

func (ma *MessageAccumulator) Messages() []string {
	if ma.msgs == nil {
		return nil
	}
	return append([]string(nil), *ma.msgs...)
}

func (ma *MessageAccumulator) Addf(format string, args ...interface{}) {
	l := ma.list()
	*l = append(*l, ma.prefix+fmt.Sprintf(format, args...))
}

// Require records a message when predicate does not hold.
func (ma *MessageAccumulator) Require(predicate bool, format string, args ...interface{}) {
	if !predicate {
		ma.Addf(format, args...)
	}
}

// RequireNoError records err, if any, with the message as context.
func (ma *MessageAccumulator) RequireNoError(err error, format string, args ...interface{}) {
	if err != nil {
		ma.Addf(format+": %v", append(args, err)...)
	}
}

func (ma *MessageAccumulator) String() string {
	return strings.Join(ma.Messages(), "\n")
}
