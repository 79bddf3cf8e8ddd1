package monacoprotocol

// Anchor framework error codes the program can surface through
// InstructionError::Custom. Program specific codes start at 6000.
const (
	AnchorErrorConstraintMut                = 2000
	AnchorErrorConstraintHasOne             = 2001
	AnchorErrorConstraintSigner             = 2002
	AnchorErrorConstraintRaw                = 2003
	AnchorErrorConstraintOwner              = 2004
	AnchorErrorConstraintRentExempt         = 2005
	AnchorErrorConstraintSeeds              = 2006
	AnchorErrorAccountDiscriminatorNotFound = 3001
	AnchorErrorAccountDiscriminatorMismatch = 3002
	AnchorErrorAccountDidNotDeserialize     = 3003
	AnchorErrorAccountNotEnoughKeys         = 3005
	AnchorErrorAccountNotMutable            = 3006
	AnchorErrorAccountOwnedByWrongProgram   = 3007
	AnchorErrorAccountNotSigner             = 3010
	AnchorErrorAccountNotInitialized        = 3012
	ProgramErrorOffset                      = 6000
	SystemErrorAccountAlreadyInUse          = 0
)

var anchorErrorNames = map[int64]string{
	AnchorErrorConstraintMut:                "ConstraintMut",
	AnchorErrorConstraintHasOne:             "ConstraintHasOne",
	AnchorErrorConstraintSigner:             "ConstraintSigner",
	AnchorErrorConstraintRaw:                "ConstraintRaw",
	AnchorErrorConstraintOwner:              "ConstraintOwner",
	AnchorErrorConstraintRentExempt:         "ConstraintRentExempt",
	AnchorErrorConstraintSeeds:              "ConstraintSeeds",
	AnchorErrorAccountDiscriminatorNotFound: "AccountDiscriminatorNotFound",
	AnchorErrorAccountDiscriminatorMismatch: "AccountDiscriminatorMismatch",
	AnchorErrorAccountDidNotDeserialize:     "AccountDidNotDeserialize",
	AnchorErrorAccountNotEnoughKeys:         "AccountNotEnoughKeys",
	AnchorErrorAccountNotMutable:            "AccountNotMutable",
	AnchorErrorAccountOwnedByWrongProgram:   "AccountOwnedByWrongProgram",
	AnchorErrorAccountNotSigner:             "AccountNotSigner",
	AnchorErrorAccountNotInitialized:        "AccountNotInitialized",
}

// ErrorName returns the anchor name of a custom error code, "" when unknown.
func ErrorName(code int64) string {
	return anchorErrorNames[code]
}
