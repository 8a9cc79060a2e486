package runtime

import (
	"fmt"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
)

// Delegation describes the receiver's stake with one validator, as reported by the staking module.
type Delegation struct {
	Validator          string    `json:"validator"`
	Amount             abi.Coin  `json:"amount"`
	AccumulatedRewards abi.Coins `json:"accumulated_rewards"`
}

// InstructionKind tags the variant of an Instruction.
type InstructionKind uint64

const (
	// Transfer Amount to the account To.
	BankSend InstructionKind = iota
	// Bond Amount to Validator.
	StakingDelegate
	// Unbond Amount from Validator.
	StakingUndelegate
	// Move Amount from Validator to DstValidator.
	StakingRedelegate
	// Collect pending staking rewards from Validator into the receiver.
	DistributionWithdrawReward
)

func (k InstructionKind) String() string {
	switch k {
	case BankSend:
		return "bank_send"
	case StakingDelegate:
		return "staking_delegate"
	case StakingUndelegate:
		return "staking_undelegate"
	case StakingRedelegate:
		return "staking_redelegate"
	case DistributionWithdrawReward:
		return "distribution_withdraw_reward"
	default:
		return fmt.Sprintf("instruction(%d)", uint64(k))
	}
}

// Instruction is an outbound intent produced by an actor method. The actor never performs the
// transfer or staking operation itself; whoever applies the message executes the instructions,
// in order, after the state change commits.
// Fields that do not apply to a kind are left empty.
type Instruction struct {
	Kind         InstructionKind `json:"kind"`
	To           string          `json:"to,omitempty"`
	Validator    string          `json:"validator,omitempty"`
	DstValidator string          `json:"dst_validator,omitempty"`
	Amount       abi.Coins       `json:"amount,omitempty"`
}

func NewBankSend(to fmt.Stringer, amount ...abi.Coin) Instruction {
	return Instruction{Kind: BankSend, To: to.String(), Amount: amount}
}

func NewDelegate(validator string, amount abi.Coin) Instruction {
	return Instruction{Kind: StakingDelegate, Validator: validator, Amount: abi.Coins{amount}}
}

func NewUndelegate(validator string, amount abi.Coin) Instruction {
	return Instruction{Kind: StakingUndelegate, Validator: validator, Amount: abi.Coins{amount}}
}

func NewRedelegate(src, dst string, amount abi.Coin) Instruction {
	return Instruction{Kind: StakingRedelegate, Validator: src, DstValidator: dst, Amount: abi.Coins{amount}}
}

func NewWithdrawReward(validator string) Instruction {
	return Instruction{Kind: DistributionWithdrawReward, Validator: validator}
}

func (k InstructionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (i Instruction) String() string {
	switch i.Kind {
	case BankSend:
		return fmt.Sprintf("%s to: %s amount: %s", i.Kind, i.To, i.Amount)
	case StakingRedelegate:
		return fmt.Sprintf("%s from: %s to: %s amount: %s", i.Kind, i.Validator, i.DstValidator, i.Amount)
	default:
		return fmt.Sprintf("%s validator: %s amount: %s", i.Kind, i.Validator, i.Amount)
	}
}

// Attribute is a key/value pair describing the effect of a method, for auditing.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is the return value of every state-changing method: an action tag, the attributes
// describing what moved, and the instructions to execute.
type Response struct {
	Action     string        `json:"action"`
	Attributes []Attribute   `json:"attributes"`
	Messages   []Instruction `json:"messages"`
}

func NewResponse(action string) *Response {
	return &Response{Action: action}
}

// AddAttribute appends a key/value attribute and returns the response for chaining.
func (r *Response) AddAttribute(key string, value fmt.Stringer) *Response {
	return r.AddAttributeString(key, value.String())
}

func (r *Response) AddAttributeString(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// AddMessage appends an instruction and returns the response for chaining.
func (r *Response) AddMessage(msg Instruction) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// Attribute returns the value of the first attribute named `key`.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
