package wallet

import (
	"fmt"
	"strings"
	"sync/atomic"

	"synthpool/core"

	"github.com/asaskevich/govalidator"
)

// New new wallet session, disconnected
func New() core.IWalletSession {
	s := &session{}
	s.state.Store(&core.WalletState{})
	return s
}

type session struct {
	state atomic.Pointer[core.WalletState]
}

func (s *session) State() core.WalletState {
	return *s.state.Load()
}

func (s *session) Connect(account string, chains []string) error {
	if !ValidAddress(account) {
		return fmt.Errorf("%w: invalid address %q", core.ErrInvalidInput, account)
	}

	s.state.Store(&core.WalletState{
		Account:   strings.ToLower(account),
		Connected: true,
		Chains:    append([]string(nil), chains...),
	})

	return nil
}

func (s *session) Disconnect() {
	s.state.Store(&core.WalletState{})
}

// ValidAddress 0x followed by 64 hex characters
func ValidAddress(address string) bool {
	if len(address) != 66 || !strings.HasPrefix(address, "0x") {
		return false
	}

	return govalidator.IsHexadecimal(address[2:])
}
