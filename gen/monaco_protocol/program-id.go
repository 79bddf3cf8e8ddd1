package monacoprotocol

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the Monaco Protocol program address.
var ProgramID = solanago.MustPublicKeyFromBase58("monacoUXKtUi6vKsQwaLyxmXKSievfNWEcYXTgkbCih")
