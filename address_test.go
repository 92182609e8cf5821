package zanders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammoready/zanders-go/soap"
)

func TestAddressService_ShipToNumber(t *testing.T) {
	caller := &fakeCaller{resp: positional("0", "ST-1234")}
	svc, err := NewAddressService(testCreds, caller)
	require.NoError(t, err)

	result, err := svc.ShipToNumber(context.Background(), Address{FFLNo: "1-23-456-78-9A-01234"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "ST-1234", result.ShipToNumber)

	assert.Equal(t, "getShipToNumber", caller.gotOp)
	require.Len(t, caller.gotParams, 3)
	assert.Equal(t, "fflno", caller.gotParams[2].Name)
	assert.Equal(t, "1-23-456-78-9A-01234", caller.gotParams[2].Value.Text)
}

func TestAddressService_ShipToNumber_VendorFailure(t *testing.T) {
	caller := &fakeCaller{resp: positional("1")}
	svc, err := NewAddressService(testCreds, caller)
	require.NoError(t, err)

	result, err := svc.ShipToNumber(context.Background(), Address{FFLNo: "1"})
	require.NoError(t, err)

	assert.Equal(t, &ShipToNumberResult{Success: false, ErrorCode: CodeBadCredentials}, result)
}

func TestAddressService_ShipToNumber_MissingFFL(t *testing.T) {
	caller := &fakeCaller{}
	svc, err := NewAddressService(testCreds, caller)
	require.NoError(t, err)

	_, err = svc.ShipToNumber(context.Background(), Address{Address1: "100 Main St"})
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Equal(t, 0, caller.calls)
}

func TestAddressService_ShipToNumber_TransportError(t *testing.T) {
	caller := &fakeCaller{err: errors.New("dial tcp: connection refused")}
	svc, err := NewAddressService(testCreds, caller)
	require.NoError(t, err)

	_, err = svc.ShipToNumber(context.Background(), Address{FFLNo: "1"})
	require.Error(t, err)
}

func TestAddressService_ListAddresses(t *testing.T) {
	resp := soap.NewMap().
		Append("returnCode", soap.String("0")).
		Append("addresses", soap.Array(
			soap.NewMap().
				Append("shipToNo", soap.String("ST-1")).
				Append("name", soap.String("Main Warehouse")).
				Append("address1", soap.String("100 Main St")).
				Append("city", soap.String("Sparta")).
				Append("state", soap.String("IL")).
				Append("zip", soap.String("62286")),
			soap.NewMap().
				Append("shipToNo", soap.String("ST-2")).
				Append("name", soap.String("Range Annex")).
				Append("address1", soap.String("9 Range Rd")).
				Append("address2", soap.String("Suite B")).
				Append("city", soap.String("Chester")).
				Append("state", soap.String("IL")).
				Append("zip", soap.String("62233")),
		))

	caller := &fakeCaller{resp: resp}
	svc, err := NewAddressService(testCreds, caller)
	require.NoError(t, err)

	result, err := svc.ListAddresses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "getAddresses", caller.gotOp)
	assert.True(t, result.Success)
	require.Len(t, result.Addresses, 2)

	assert.Equal(t, CustomerAddress{
		ShipToNumber: "ST-1",
		Name:         "Main Warehouse",
		Address1:     "100 Main St",
		City:         "Sparta",
		State:        "IL",
		Zip:          "62286",
	}, result.Addresses[0])
	assert.Equal(t, "Suite B", result.Addresses[1].Address2)
}

func TestAddressService_ListAddresses_Empty(t *testing.T) {
	caller := &fakeCaller{resp: positional("0")}
	svc, err := NewAddressService(testCreds, caller)
	require.NoError(t, err)

	result, err := svc.ListAddresses(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Addresses)
}

func TestAddressService_ListAddresses_VendorFailure(t *testing.T) {
	caller := &fakeCaller{resp: positional("1")}
	svc, err := NewAddressService(testCreds, caller)
	require.NoError(t, err)

	result, err := svc.ListAddresses(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, CodeBadCredentials, result.ErrorCode)
}

func TestNewAddressService_RequiresCredentials(t *testing.T) {
	_, err := NewAddressService(Credentials{}, &fakeCaller{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
