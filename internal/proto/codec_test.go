package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestEncodeDecode_StoreVaultRequest(t *testing.T) {
	in := StoreVaultRequest{
		MasterPassword: "pw",
		Vault: map[string]Credential{
			"a.com": {Username: "x", Password: "y"},
		},
	}

	s, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, "pw", s.Fields["master_password"].GetStringValue())
	site := s.Fields["vault"].GetStructValue().Fields["a.com"].GetStructValue()
	assert.Equal(t, "x", site.Fields["username"].GetStringValue())

	var out StoreVaultRequest
	require.NoError(t, Decode(s, &out))
	assert.Equal(t, in, out)
}

func TestDecode_NilStruct(t *testing.T) {
	var out PingRequest
	require.NoError(t, Decode(nil, &out))
	assert.Equal(t, PingRequest{}, out)
}

func TestDecode_TypeMismatch(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"vault": "not-an-object"})
	require.NoError(t, err)

	var out StoreVaultRequest
	assert.Error(t, Decode(s, &out))
}

func TestServiceDesc_Methods(t *testing.T) {
	names := map[string]bool{}
	for _, m := range VaultService_ServiceDesc.Methods {
		names[m.MethodName] = true
	}
	for _, want := range []string{"Ping", "Register", "Login", "RefreshToken", "StoreVault", "RetrieveVault", "ExportVault"} {
		assert.True(t, names[want], want)
	}
	assert.Equal(t, ServiceName, VaultService_ServiceDesc.ServiceName)
}
