package zanders

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ammoready/zanders-go/soap"
)

// Item service operation names on the wire.
const (
	opGetItems    = "getItems"
	opGetItemInfo = "getItemInfo"
)

// Item is one sellable item as reported by the item service.
type Item struct {
	ItemNumber   string
	Description  string
	Manufacturer string
	MfgNumber    string
	UPC          string
	Price        decimal.Decimal
	MAPPrice     decimal.Decimal
	Available    int
}

// ItemListResult is the outcome of ListItems.
type ItemListResult struct {
	Success   bool
	Items     []Item
	ErrorCode ReturnCode
}

// ItemResult is the outcome of GetItem.
type ItemResult struct {
	Success   bool
	Item      Item
	ErrorCode ReturnCode
}

// ItemService reads item data from the vendor's item service.
type ItemService struct {
	creds  Credentials
	soap   soap.Caller
	logger *zap.Logger
}

// ItemOption configures an ItemService.
type ItemOption func(*ItemService)

// WithItemLogger attaches a logger to the service.
func WithItemLogger(l *zap.Logger) ItemOption {
	return func(s *ItemService) {
		s.logger = l
	}
}

// NewItemService creates an item service over the given transport.
func NewItemService(creds Credentials, caller soap.Caller, opts ...ItemOption) (*ItemService, error) {
	if err := creds.check(); err != nil {
		return nil, err
	}

	s := &ItemService{
		creds:  creds,
		soap:   caller,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// ListItems returns the items available to the account.
func (s *ItemService) ListItems(ctx context.Context) (*ItemListResult, error) {
	params := []soap.Param{
		{Name: "username", Value: soap.String(s.creds.Username)},
		{Name: "password", Value: soap.String(s.creds.Password)},
	}

	resp, err := s.soap.Call(ctx, opGetItems, params)
	if err != nil {
		return nil, err
	}

	code, err := returnCodeOf(resp)
	if err != nil {
		return nil, err
	}

	if !code.IsSuccess() {
		s.logger.Debug("item list request rejected",
			zap.String("error_code", code.String()))
		return &ItemListResult{Success: false, ErrorCode: code}, nil
	}

	result := &ItemListResult{Success: true}

	items, ok := resp.Lookup("items")
	if !ok || items.Kind != soap.KindArray {
		return result, nil
	}

	for _, elem := range items.Elems {
		result.Items = append(result.Items, itemFromPairs(elem.Pairs))
	}

	return result, nil
}

// GetItem returns detail for a single item number.
func (s *ItemService) GetItem(ctx context.Context, itemNumber string) (*ItemResult, error) {
	if itemNumber == "" {
		return nil, fmt.Errorf("%w: item number", ErrMissingArgument)
	}

	params := []soap.Param{
		{Name: "username", Value: soap.String(s.creds.Username)},
		{Name: "password", Value: soap.String(s.creds.Password)},
		{Name: "itemnumber", Value: soap.String(itemNumber)},
	}

	resp, err := s.soap.Call(ctx, opGetItemInfo, params)
	if err != nil {
		return nil, err
	}

	code, err := returnCodeOf(resp)
	if err != nil {
		return nil, err
	}

	if !code.IsSuccess() {
		s.logger.Debug("item info request rejected",
			zap.String("item_number", itemNumber),
			zap.String("error_code", code.String()))
		return &ItemResult{Success: false, ErrorCode: code}, nil
	}

	return &ItemResult{
		Success: true,
		Item:    itemFromPairs(resp.Pairs),
	}, nil
}

// itemFromPairs maps recognized item keys into an Item record; unrecognized
// keys are ignored.
func itemFromPairs(pairs []soap.Pair) Item {
	var item Item

	for _, pair := range pairs {
		value := pair.Value.StringValue()

		switch pair.Key {
		case "itemNumber":
			item.ItemNumber = value
		case "description":
			item.Description = value
		case "manufacturer":
			item.Manufacturer = value
		case "mfgNumber":
			item.MfgNumber = value
		case "upc":
			item.UPC = value
		case "price":
			item.Price = parseDecimal(value)
		case "mapPrice":
			item.MAPPrice = parseDecimal(value)
		case "available":
			if n, err := strconv.Atoi(value); err == nil {
				item.Available = n
			}
		}
	}

	return item
}
