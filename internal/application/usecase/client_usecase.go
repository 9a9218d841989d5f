package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"golang.org/x/text/cases"
)

// ClientUseCase casos de uso de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente con estado "ativo".
func (uc *ClientUseCase) Create(in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ClientStatusActive
	}
	saved, err := uc.repo.Create(&entity.Client{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		TaxID:         in.TaxID,
		Address:       in.Address,
		InsuranceType: in.InsuranceType,
		Notes:         in.Notes,
		Status:        status,
	})
	if err != nil {
		return nil, fmt.Errorf("cliente: crear: %w", err)
	}
	return toClientResponse(saved), nil
}

// Get obtiene un cliente; ErrNotFound si no existe.
func (uc *ClientUseCase) Get(id int64) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// Update reemplaza los datos editables del cliente.
func (uc *ClientUseCase) Update(id int64, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	current.Name = in.Name
	current.Email = in.Email
	current.Phone = in.Phone
	current.TaxID = in.TaxID
	current.Address = in.Address
	current.InsuranceType = in.InsuranceType
	current.Notes = in.Notes
	if in.Status != "" {
		current.Status = in.Status
	}
	saved, err := uc.repo.Update(current)
	if err != nil {
		return nil, fmt.Errorf("cliente: actualizar: %w", err)
	}
	return toClientResponse(saved), nil
}

// Delete elimina el cliente. Las tarjetas que lo referencian conservan el ClientID.
func (uc *ClientUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

// List todos los clientes.
func (uc *ClientUseCase) List() ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Search coincidencia por subcadena sin distinguir mayúsculas en nombre, email, teléfono y CPF/CNPJ.
// Recorre toda la colección; sin ranking ni paginación. Query vacío devuelve todos.
func (uc *ClientUseCase) Search(query string) ([]*dto.ClientResponse, error) {
	if strings.TrimSpace(query) == "" {
		return uc.List()
	}
	list, err := uc.repo.ListBy(func(c *entity.Client) bool { return MatchesClient(c, query) })
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Entities devuelve las entidades (para reportes).
func (uc *ClientUseCase) Entities() ([]*entity.Client, error) {
	return uc.repo.List()
}

// MatchesClient indica si query aparece (case-folded) en alguno de los campos buscables.
func MatchesClient(c *entity.Client, query string) bool {
	fold := cases.Fold()
	q := fold.String(query)
	for _, field := range []string{c.Name, c.Email, c.Phone, c.TaxID} {
		if strings.Contains(fold.String(field), q) {
			return true
		}
	}
	return false
}

func toClientResponses(list []*entity.Client) []*dto.ClientResponse {
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		TaxID:         c.TaxID,
		Address:       c.Address,
		InsuranceType: c.InsuranceType,
		Notes:         c.Notes,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
