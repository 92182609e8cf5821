package zanders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ammoready/zanders-go/soap"
)

// Address service operation names on the wire.
const (
	opGetShipToNumber = "getShipToNumber"
	opGetAddresses    = "getAddresses"
)

// CustomerAddress is one ship-to address registered with the vendor for the
// customer account.
type CustomerAddress struct {
	ShipToNumber string
	Name         string
	Address1     string
	Address2     string
	City         string
	State        string
	Zip          string
}

// AddressListResult is the outcome of ListAddresses.
type AddressListResult struct {
	Success   bool
	Addresses []CustomerAddress
	ErrorCode ReturnCode
}

// AddressService resolves ship-to numbers and lists the addresses on file
// with the vendor.
type AddressService struct {
	creds  Credentials
	soap   soap.Caller
	logger *zap.Logger
}

// AddressOption configures an AddressService.
type AddressOption func(*AddressService)

// WithAddressLogger attaches a logger to the service.
func WithAddressLogger(l *zap.Logger) AddressOption {
	return func(s *AddressService) {
		s.logger = l
	}
}

// NewAddressService creates an address service over the given transport.
func NewAddressService(creds Credentials, caller soap.Caller, opts ...AddressOption) (*AddressService, error) {
	if err := creds.check(); err != nil {
		return nil, err
	}

	s := &AddressService{
		creds:  creds,
		soap:   caller,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// ShipToNumber resolves the vendor ship-to number aliased to the address's
// FFL number. The number substitutes for a full postal address on an order.
func (s *AddressService) ShipToNumber(ctx context.Context, address Address) (*ShipToNumberResult, error) {
	if address.FFLNo == "" {
		return nil, fmt.Errorf("%w: fflno", ErrMissingArgument)
	}

	params := []soap.Param{
		{Name: "username", Value: soap.String(s.creds.Username)},
		{Name: "password", Value: soap.String(s.creds.Password)},
		{Name: "fflno", Value: soap.String(address.FFLNo)},
	}

	resp, err := s.soap.Call(ctx, opGetShipToNumber, params)
	if err != nil {
		return nil, err
	}

	code, err := returnCodeOf(resp)
	if err != nil {
		return nil, err
	}

	if !code.IsSuccess() {
		s.logger.Debug("ship-to-number request rejected",
			zap.String("ffl_no", address.FFLNo),
			zap.String("error_code", code.String()))
		return &ShipToNumberResult{Success: false, ErrorCode: code}, nil
	}

	// Like createOrder's order number, the ship-to number is the unlabeled
	// last pair of the response.
	return &ShipToNumberResult{
		Success:      true,
		ShipToNumber: resp.Last().Value.StringValue(),
	}, nil
}

// ListAddresses returns every ship-to address registered for the account.
func (s *AddressService) ListAddresses(ctx context.Context) (*AddressListResult, error) {
	params := []soap.Param{
		{Name: "username", Value: soap.String(s.creds.Username)},
		{Name: "password", Value: soap.String(s.creds.Password)},
	}

	resp, err := s.soap.Call(ctx, opGetAddresses, params)
	if err != nil {
		return nil, err
	}

	code, err := returnCodeOf(resp)
	if err != nil {
		return nil, err
	}

	if !code.IsSuccess() {
		s.logger.Debug("address list request rejected",
			zap.String("error_code", code.String()))
		return &AddressListResult{Success: false, ErrorCode: code}, nil
	}

	result := &AddressListResult{Success: true}

	addresses, ok := resp.Lookup("addresses")
	if !ok || addresses.Kind != soap.KindArray {
		// An account with no registered addresses omits the list entirely.
		return result, nil
	}

	for _, elem := range addresses.Elems {
		var addr CustomerAddress
		for _, pair := range elem.Pairs {
			value := pair.Value.StringValue()

			switch pair.Key {
			case "shipToNo":
				addr.ShipToNumber = value
			case "name":
				addr.Name = value
			case "address1":
				addr.Address1 = value
			case "address2":
				addr.Address2 = value
			case "city":
				addr.City = value
			case "state":
				addr.State = value
			case "zip":
				addr.Zip = value
			}
		}
		result.Addresses = append(result.Addresses, addr)
	}

	return result, nil
}

var _ ShipToLookup = (*AddressService)(nil)
