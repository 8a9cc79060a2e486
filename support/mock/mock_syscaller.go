package mock

import (
	addr "github.com/filecoin-project/go-address"

	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/runtime"
)

type AddressValidatorFunc func(s string) (addr.Address, error)

type syscaller struct {
	AddressValidator AddressValidatorFunc
}

var _ runtime.Syscalls = (*syscaller)(nil)

// Interface methods
func (s *syscaller) ValidateAddress(str string) (addr.Address, error) {
	if s.AddressValidator == nil {
		return builtin.ValidateAddressString(str)
	}
	return s.AddressValidator(str)
}
