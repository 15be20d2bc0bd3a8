package gateway

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type beneficiaryAccount struct {
	NumeroCuenta string `json:"numeroCuenta"`
	Titular      string `json:"titular"`
	Banco        string `json:"banco"`
}

type transferAmount struct {
	Cantidad   json.Number `json:"cantidad"`
	TipoMoneda string      `json:"tipoMoneda"`
}

type transferPayload struct {
	CuentaBeneficiario beneficiaryAccount `json:"cuentaBeneficiario"`
	MontoTransferencia transferAmount     `json:"montoTransferencia"`
	TipoTransferencia  string             `json:"tipoTransferencia"`
	CodigoSwift        string             `json:"codigoSwift,omitempty"`
}

type transferReceipt struct {
	TransferenciaID looseString     `json:"transferenciaId"`
	FechaProceso    looseString     `json:"fechaProceso"`
	Comision        decimal.Decimal `json:"comision"`
	Estado          string          `json:"estado"`
}

type fieldError struct {
	Campo       string `json:"campo"`
	Descripcion string `json:"descripcion"`
}

type transferResponse struct {
	Data    *transferReceipt `json:"data"`
	Errores []fieldError     `json:"errores"`
	Mensaje string           `json:"mensaje"`
}

// looseString accepts a JSON string or number.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}
