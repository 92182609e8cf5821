package zanders

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order. The wire encoding also carries an
// allowBackOrder flag; the vendor integration always sends it as false.
type OrderItem struct {
	ItemNumber string
	Quantity   int
}

// Address is the ship-to destination of an order. Exactly one of the full
// postal address or the FFL number is used per order; FFLNo takes precedence
// when present and is resolved to a vendor ship-to number before the order
// is submitted.
type Address struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	// FFLNo is a federal firearms license number that substitutes for the
	// postal fields via a ship-to-number lookup.
	FFLNo string
}

// addressStructLevel enforces that an address carries either an FFL number
// or the full postal field set (Address2 stays optional).
func addressStructLevel(sl validator.StructLevel) {
	addr := sl.Current().Interface().(Address)
	if addr.FFLNo != "" {
		return
	}

	if addr.Address1 == "" {
		sl.ReportError(addr.Address1, "Address1", "Address1", "required_without_ffl", "")
	}
	if addr.City == "" {
		sl.ReportError(addr.City, "City", "City", "required_without_ffl", "")
	}
	if addr.State == "" {
		sl.ReportError(addr.State, "State", "State", "required_without_ffl", "")
	}
	if addr.Zip == "" {
		sl.ReportError(addr.Zip, "Zip", "Zip", "required_without_ffl", "")
	}
}

// ShippingDetails optionally names a recipient for the shipment. When Name
// is set, the pair is rendered into the vendor's fixed-width
// shipInstructions field.
type ShippingDetails struct {
	Name        string
	PhoneNumber string
}

// OrderResult is the outcome of CreateOrder.
type OrderResult struct {
	Success     bool
	OrderNumber string
	ErrorCode   ReturnCode
}

// OrderInfo is the outcome of GetOrder. Date fields are kept as vendor
// strings; their format is not documented.
type OrderInfo struct {
	Success             bool
	OrderNumber         string
	PurchaseOrderNumber string
	OrderDate           string
	OrderEnteredDate    string
	OrderShipDate       string
	Subtotal            decimal.Decimal
	Freight             decimal.Decimal
	MiscFee             decimal.Decimal
	SelectionCode       string
	DatePicked          string
	GrandTotal          decimal.Decimal
	ErrorCode           ReturnCode
}

// TrackingInfo is the outcome of GetTrackingInfo.
type TrackingInfo struct {
	Success        bool
	Company        string
	Via            string
	TrackingNumber string
	Weight         string
	URL            string
	ErrorCode      ReturnCode
	ErrorMessage   string
}

// ShipToNumberResult is the outcome of a ship-to-number lookup.
type ShipToNumberResult struct {
	Success      bool
	ShipToNumber string
	ErrorCode    ReturnCode
}

// parseDecimal parses a vendor decimal string, returning zero for empty or
// malformed input. The vendor occasionally ships blank money columns.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}
