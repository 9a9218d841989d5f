package dto

import "time"

// ClientRequest entrada para crear o editar un cliente.
type ClientRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,max=40"`
	TaxID         string `json:"cpf_cnpj" validate:"required,max=20"`
	Address       string `json:"address" validate:"omitempty,max=300"`
	InsuranceType string `json:"insurance_type" validate:"omitempty,max=80"`
	Notes         string `json:"notes"`
	Status        string `json:"status" validate:"omitempty,oneof=ativo inativo"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	TaxID         string    `json:"cpf_cnpj"`
	Address       string    `json:"address,omitempty"`
	InsuranceType string    `json:"insurance_type,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
