package enum

// LineItemType distinguishes labor entries from parts on a job or estimate.
type LineItemType string

const (
	LineItemLabor LineItemType = "labor"
	LineItemPart  LineItemType = "part"
)

// IsValid reports whether t is a known line item type.
func (t LineItemType) IsValid() bool {
	return t == LineItemLabor || t == LineItemPart
}

// FeeMethod selects the base a surcharge is computed from.
type FeeMethod string

const (
	FeePercentOfLabor FeeMethod = "percent_of_labor"
	FeePercentOfParts FeeMethod = "percent_of_parts"
	FeePercentOfTotal FeeMethod = "percent_of_total"
	FeeFlat           FeeMethod = "flat"
)

// IsValid reports whether m is a known fee method.
func (m FeeMethod) IsValid() bool {
	switch m {
	case FeePercentOfLabor, FeePercentOfParts, FeePercentOfTotal, FeeFlat:
		return true
	}
	return false
}

// CustomerType classifies how a customer does business with the shop.
type CustomerType string

const (
	CustomerRetail  CustomerType = "retail"
	CustomerFleet   CustomerType = "fleet"
	CustomerParking CustomerType = "parking"
)

// IsValid reports whether t is a known customer type.
func (t CustomerType) IsValid() bool {
	return t == CustomerRetail || t == CustomerFleet || t == CustomerParking
}

// InvoiceStatus represents the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

// PaymentMethod is how a payment was taken.
type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentCash     PaymentMethod = "cash"
	PaymentCheck    PaymentMethod = "check"
	PaymentTerminal PaymentMethod = "terminal"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentCheck, PaymentTerminal:
		return true
	}
	return false
}

// ReservationStatus represents the lifecycle of a parking reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationActive    ReservationStatus = "active"
	ReservationEnded     ReservationStatus = "ended"
	ReservationCancelled ReservationStatus = "cancelled"
)

// IsValid reports whether s is a known reservation status.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPending, ReservationActive, ReservationEnded, ReservationCancelled:
		return true
	}
	return false
}

// UserRole is a team member's role within the shop.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAdvisor    UserRole = "advisor"
	RoleTechnician UserRole = "technician"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleAdvisor || r == RoleTechnician
}
