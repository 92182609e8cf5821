package zanders

// ReturnCode is the vendor's integer-as-string status code carried as the
// first pair of every SOAP response. "0" means success; for any other code
// the rest of the response is not guaranteed and must not be read as data.
type ReturnCode string

// Vendor return codes, as documented by the order service.
const (
	CodeSuccess           ReturnCode = "0"
	CodeBadCredentials    ReturnCode = "1"
	CodeOrderCreateFailed ReturnCode = "2"
	CodeNoItems           ReturnCode = "5"
	CodeItemsUnavailable  ReturnCode = "9"
	CodeShipDateTooEarly  ReturnCode = "10"
	CodeShipDateTooLate   ReturnCode = "11"
	CodeOrderNotOwned     ReturnCode = "21"
	CodeQuantityTooLow    ReturnCode = "31"
	CodeItemNotOnOrder    ReturnCode = "41"
)

// IsSuccess returns true for the vendor success code.
func (c ReturnCode) IsSuccess() bool {
	return c == CodeSuccess
}

// String returns the wire form of the code.
func (c ReturnCode) String() string {
	return string(c)
}

// Message returns the vendor's documented meaning of the code, or a generic
// description for codes outside the documented taxonomy.
func (c ReturnCode) Message() string {
	switch c {
	case CodeSuccess:
		return "Success"
	case CodeBadCredentials:
		return "Username and/or Password were incorrect"
	case CodeOrderCreateFailed:
		return "There was a problem creating the order"
	case CodeNoItems:
		return "Cannot create order with no items"
	case CodeItemsUnavailable:
		return "Order not created because all items not available and not to be back ordered"
	case CodeShipDateTooEarly:
		return "Ship date cannot be before today"
	case CodeShipDateTooLate:
		return "Ship date cannot be more than 30 days in the future"
	case CodeOrderNotOwned:
		return "The order number is not connected to your customer number"
	case CodeQuantityTooLow:
		return "Cannot add item with quantity of less than 1"
	case CodeItemNotOnOrder:
		return "The item number requested is not connected to this order"
	default:
		return "Unknown return code " + string(c)
	}
}
