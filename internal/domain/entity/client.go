package entity

import "time"

// Estados de Client.
const (
	ClientStatusActive   = "ativo"
	ClientStatusInactive = "inativo"
)

// Client representa un cliente de la corretora.
type Client struct {
	ID            int64
	Name          string
	Email         string
	Phone         string
	TaxID         string // CPF o CNPJ
	Address       string
	InsuranceType string
	Notes         string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
