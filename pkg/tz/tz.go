// Package tz maneja la zona horaria fija de operación.
//
// El sistema opera con un desplazamiento UTC fijo (Venezuela, UTC-4) y nunca
// con el reloj local del host: un despliegue en otro huso no debe cambiar la
// hora a la que corre el reset diario.
package tz

import (
	"fmt"
	"time"
)

// Location zona horaria de offset fijo en horas respecto a UTC.
func Location(offsetHours int) *time.Location {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	return time.FixedZone(name, offsetHours*3600)
}

// CivilDate trunca t a su fecha civil en la zona dada, representada como
// medianoche UTC para que las comparaciones de fechas sean exactas.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
