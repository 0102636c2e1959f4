package core

// WalletState wallet as reported by the browser adapter
type WalletState struct {
	Account   string   `json:"account,omitempty"`
	Connected bool     `json:"connected"`
	Chains    []string `json:"chains,omitempty"`
}

// OnNetwork connected and the wallet reports network among its chains
func (s WalletState) OnNetwork(network string) bool {
	if !s.Connected || s.Account == "" {
		return false
	}

	for _, c := range s.Chains {
		if c == network {
			return true
		}
	}

	return false
}

// IWalletSession wallet connection, read by the synchronizer
type IWalletSession interface {
	State() WalletState
	Connect(account string, chains []string) error
	Disconnect()
}
