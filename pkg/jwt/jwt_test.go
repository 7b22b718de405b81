package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/combustible-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "María Pérez", "V-12345678", pkgjwt.ActorCliente, "combustible-api", 60)
	require.NoError(t, err)

	id, tipo, nombre, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, pkgjwt.ActorCliente, tipo)
	assert.Equal(t, "María Pérez", nombre)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", "", pkgjwt.ActorAdmin, "combustible-api", 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "un token firmado con otro secret debe rechazarse")
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", "", pkgjwt.ActorAdmin, "combustible-api", -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "admin", "", pkgjwt.ActorAdmin, "combustible-api", 60)
	assert.Error(t, err)
}
