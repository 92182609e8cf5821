package zanders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ammoready/zanders-go/soap"
)

// Order service operation names on the wire.
const (
	opCreateOrder     = "createOrder"
	opGetOrderInfo    = "getOrderInfo"
	opGetTrackingInfo = "getTrackingInfo"
)

// shipViaCode is the only shipping method the vendor accepts from this
// integration.
const shipViaCode = "UG"

// shipDateFormat is the ISO 8601 date form the order service expects.
const shipDateFormat = "2006-01-02"

// nameFieldWidth is the reserved width of the recipient name inside the
// shipInstructions field. The vendor reads the field positionally: the first
// 40 characters are the name, everything after is the phone number.
const nameFieldWidth = 40

// ShipToLookup resolves an FFL number to a vendor ship-to number. The order
// service depends on the address service only through this interface.
type ShipToLookup interface {
	ShipToNumber(ctx context.Context, address Address) (*ShipToNumberResult, error)
}

// OrderService creates orders and reads order and tracking state. Each call
// is a single synchronous round trip: encode, call, decode. The service
// holds no mutable state beyond the credentials captured at construction,
// so concurrent calls are independent.
type OrderService struct {
	creds     Credentials
	soap      soap.Caller
	addresses ShipToLookup
	logger    *zap.Logger
	now       func() time.Time
}

// OrderOption configures an OrderService.
type OrderOption func(*OrderService)

// WithOrderLogger attaches a logger to the service.
func WithOrderLogger(l *zap.Logger) OrderOption {
	return func(s *OrderService) {
		s.logger = l
	}
}

// WithClock replaces the ship-date clock, for tests.
func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) {
		s.now = now
	}
}

// NewOrderService creates an order service over the given transport. The
// addresses collaborator is only consulted for FFL orders and may be nil
// when those are never placed; an FFL order placed without it fails with
// ErrMissingArgument.
func NewOrderService(creds Credentials, caller soap.Caller, addresses ShipToLookup, opts ...OrderOption) (*OrderService, error) {
	if err := creds.check(); err != nil {
		return nil, err
	}

	s := &OrderService{
		creds:     creds,
		soap:      caller,
		addresses: addresses,
		logger:    zap.NewNop(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// CreateOrder submits a new order. Items are sent in input order; the
// vendor rejects empty item lists and non-positive quantities with its own
// return codes rather than this client validating them. When the address
// carries an FFL number a ship-to-number lookup runs first, and its failure
// becomes the overall result without the order ever being submitted.
func (s *OrderService) CreateOrder(ctx context.Context, items []OrderItem, address Address, purchaseOrderNumber string, details *ShippingDetails) (*OrderResult, error) {
	if err := validate.Struct(address); err != nil {
		return nil, fmt.Errorf("%w: address needs either fflno or address1/city/state/zip: %v", ErrMissingArgument, err)
	}

	order := soap.NewMap().
		Append("shipDate", soap.String(s.now().Format(shipDateFormat))).
		Append("shipViaCode", soap.String(shipViaCode)).
		Append("purchaseOrderNumber", soap.String(purchaseOrderNumber))

	if address.FFLNo != "" {
		if s.addresses == nil {
			return nil, fmt.Errorf("%w: FFL orders need a ship-to lookup service", ErrMissingArgument)
		}
		lookup, err := s.addresses.ShipToNumber(ctx, address)
		if err != nil {
			return nil, err
		}
		if !lookup.Success {
			s.logger.Debug("ship-to-number lookup rejected",
				zap.String("ffl_no", address.FFLNo),
				zap.String("error_code", lookup.ErrorCode.String()))
			return &OrderResult{Success: false, ErrorCode: lookup.ErrorCode}, nil
		}
		order.Append("shipToNo", soap.String(lookup.ShipToNumber))
	} else {
		order.Append("shipToAddress1", soap.String(address.Address1)).
			Append("shipToAddress2", soap.String(address.Address2)).
			Append("shipToCity", soap.String(address.City)).
			Append("shipToState", soap.String(address.State)).
			Append("shipToZip", soap.String(address.Zip))
	}

	if details != nil && details.Name != "" {
		order.Append("shipInstructions", soap.String(formatShippingInstructions(details.Name, details.PhoneNumber)))
	}

	// The items array is always the final pair of the order map.
	elems := make([]*soap.Node, 0, len(items))
	for _, item := range items {
		elems = append(elems, soap.NewMap().
			Append("itemNumber", soap.String(item.ItemNumber)).
			Append("quantity", soap.String(strconv.Itoa(item.Quantity))).
			Append("allowBackOrder", soap.Bool(false)))
	}
	order.Append("items", soap.Array(elems...))

	resp, err := s.soap.Call(ctx, opCreateOrder, s.orderParams(soap.Param{Name: "order", Value: order}))
	if err != nil {
		return nil, err
	}

	return decodeCreateOrder(resp)
}

// GetOrder reads the current state of an order by vendor order number.
func (s *OrderService) GetOrder(ctx context.Context, orderNumber string) (*OrderInfo, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("%w: order number", ErrMissingArgument)
	}

	resp, err := s.soap.Call(ctx, opGetOrderInfo, s.orderParams(soap.Param{Name: "ordernumber", Value: soap.String(orderNumber)}))
	if err != nil {
		return nil, err
	}

	return decodeGetOrder(resp, orderNumber)
}

// GetTrackingInfo reads shipment tracking for an order. A successful
// response reporting zero shipments is surfaced as a failed result with an
// explanatory message rather than an empty success.
func (s *OrderService) GetTrackingInfo(ctx context.Context, orderNumber string) (*TrackingInfo, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("%w: order number", ErrMissingArgument)
	}

	resp, err := s.soap.Call(ctx, opGetTrackingInfo, s.orderParams(soap.Param{Name: "ordernumber", Value: soap.String(orderNumber)}))
	if err != nil {
		return nil, err
	}

	return decodeGetTrackingInfo(resp)
}

// orderParams builds the base parameter list (credentials) followed by the
// operation-specific parameters.
func (s *OrderService) orderParams(extra ...soap.Param) []soap.Param {
	params := []soap.Param{
		{Name: "username", Value: soap.String(s.creds.Username)},
		{Name: "password", Value: soap.String(s.creds.Password)},
	}

	return append(params, extra...)
}

// formatShippingInstructions renders the recipient name and phone number
// into the vendor's fixed-format field: the name left-justified, truncated
// or padded to exactly 40 characters, immediately followed by the phone
// number with no separator.
func formatShippingInstructions(name, phoneNumber string) string {
	return fmt.Sprintf("%-40.40s", name) + phoneNumber
}

// returnCodeOf reads the invariant first pair of a response.
func returnCodeOf(resp *soap.Node) (ReturnCode, error) {
	first := resp.First()
	if first == nil {
		return "", fmt.Errorf("%w: empty return sequence", ErrInvalidResponse)
	}

	return ReturnCode(first.Value.StringValue()), nil
}

// decodeCreateOrder interprets a createOrder response. On success the order
// number is the value of the last pair; the vendor does not label it by key.
func decodeCreateOrder(resp *soap.Node) (*OrderResult, error) {
	code, err := returnCodeOf(resp)
	if err != nil {
		return nil, err
	}

	if !code.IsSuccess() {
		return &OrderResult{Success: false, ErrorCode: code}, nil
	}

	return &OrderResult{
		Success:     true,
		OrderNumber: resp.Last().Value.StringValue(),
	}, nil
}

// decodeGetOrder interprets a getOrderInfo response. Recognized keys
// populate the record, unrecognized keys are ignored for forward
// compatibility. The order number is not re-read from the response; the
// caller's input is passed through.
func decodeGetOrder(resp *soap.Node, orderNumber string) (*OrderInfo, error) {
	code, err := returnCodeOf(resp)
	if err != nil {
		return nil, err
	}

	if !code.IsSuccess() {
		return &OrderInfo{Success: false, ErrorCode: code}, nil
	}

	info := &OrderInfo{
		Success:     true,
		OrderNumber: orderNumber,
	}

	for _, pair := range resp.Pairs {
		value := pair.Value.StringValue()

		switch pair.Key {
		case "purchaseOrderNumber":
			info.PurchaseOrderNumber = value
		case "orderDate":
			info.OrderDate = value
		case "orderEnteredDate":
			info.OrderEnteredDate = value
		case "orderShipDate":
			info.OrderShipDate = value
		case "subtotal":
			info.Subtotal = parseDecimal(value)
		case "freight":
			info.Freight = parseDecimal(value)
		case "miscFee":
			info.MiscFee = parseDecimal(value)
		case "selectionCode":
			info.SelectionCode = value
		case "datePicked":
			info.DatePicked = value
		case "grandTotal":
			info.GrandTotal = parseDecimal(value)
		}
	}

	return info, nil
}

// noTrackingMessage is returned when the vendor reports success but zero
// shipments. The original integration models this empty success as a
// failure to the caller; reproduced as-is.
const noTrackingMessage = "No present tracking information"

// decodeGetTrackingInfo interprets a getTrackingInfo response.
func decodeGetTrackingInfo(resp *soap.Node) (*TrackingInfo, error) {
	code, err := returnCodeOf(resp)
	if err != nil {
		return nil, err
	}

	if !code.IsSuccess() {
		return &TrackingInfo{Success: false, ErrorCode: code}, nil
	}

	shipments, ok := resp.Lookup("numberOfShipments")
	if !ok {
		return nil, fmt.Errorf("%w: numberOfShipments missing", ErrInvalidResponse)
	}
	if shipments.StringValue() == "0" {
		return &TrackingInfo{
			Success:      false,
			ErrorCode:    code,
			ErrorMessage: noTrackingMessage,
		}, nil
	}

	trackingNumbers, ok := resp.Lookup("trackingNumbers")
	if !ok {
		return nil, fmt.Errorf("%w: trackingNumbers missing", ErrInvalidResponse)
	}
	if trackingNumbers.Kind != soap.KindArray || trackingNumbers.Len() == 0 {
		return nil, fmt.Errorf("%w: trackingNumbers is not a shipment list", ErrInvalidResponse)
	}

	info := &TrackingInfo{Success: true}

	for _, pair := range trackingNumbers.Elems[0].Pairs {
		value := pair.Value.StringValue()

		switch pair.Key {
		case "shipCompany":
			info.Company = value
		case "shipVia":
			info.Via = value
		case "trackingNumber":
			info.TrackingNumber = value
		case "weight":
			info.Weight = value
		case "url":
			info.URL = value
		}
	}

	return info, nil
}
