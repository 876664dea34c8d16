package types

// Event types
const (
	EventTypeCreateSchedule = "create_schedule"
	EventTypeWithdraw       = "withdraw"
	EventTypeRevoke         = "revoke"

	AttributeKeyBeneficiary   = "beneficiary"
	AttributeKeyAdministrator = "administrator"
	AttributeKeyAmount        = "amount"
	AttributeKeyReleased      = "released"
	AttributeKeyVested        = "vested"
	AttributeKeyRevocable     = "revocable"
)
