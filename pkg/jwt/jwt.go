package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de actor autenticado.
const (
	ActorAdmin   = "admin"
	ActorCliente = "cliente"
)

// Claims claims estándar más los campos propios de la aplicación.
// Tipo distingue sesiones de administradores/operadores de las de clientes;
// el middleware decide acceso sin consultar la base de datos.
type Claims struct {
	jwt.RegisteredClaims
	Nombre string `json:"nombre"`
	Cedula string `json:"cedula,omitempty"`
	Tipo   string `json:"tipo"` // "admin" | "cliente"
}

// Generate genera un token HS256 firmado para el actor dado.
// id es el id numérico del usuario (admin) o del cliente.
func Generate(secret string, id int64, nombre, cedula, tipo, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Nombre: nombre,
		Cedula: cedula,
		Tipo:   tipo,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve id, tipo y nombre del actor.
// Retorna error si el token es inválido, expirado o con firma incorrecta.
func Parse(secret, tokenString string) (id int64, tipo, nombre string, err error) {
	if secret == "" {
		return 0, "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", "", fmt.Errorf("claims inválidos")
	}
	id, err = strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("subject no numérico: %w", err)
	}
	return id, claims.Tipo, claims.Nombre, nil
}
