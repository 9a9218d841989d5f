package usecase

import (
	"fmt"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario con la contraseña hasheada (bcrypt).
// Username repetido → ErrDuplicate; rol fuera del conjunto → ErrInvalidInput.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(in.Role)
	if in.Username == "" || in.Password == "" || !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	saved, err := uc.repo.Create(&entity.User{
		Username:     in.Username,
		Email:        in.Email,
		Name:         in.Name,
		Role:         role,
		PasswordHash: hash,
		Active:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("usuario: crear: %w", err)
	}
	return ToUserResponse(saved), nil
}

// GetByID obtiene un usuario por ID; ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// List todos los usuarios.
func (uc *UserUseCase) List() ([]*dto.UserResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario. Un usuario no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(actorID, id int64) error {
	if actorID == id {
		return domain.ErrSelfDelete
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	return nil
}

// SeedUser crea el usuario si no existe ninguno con ese username. Devuelve true si lo creó.
func (uc *UserUseCase) SeedUser(in dto.CreateUserRequest) (bool, error) {
	existing, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.Create(in); err != nil {
		return false, err
	}
	return true, nil
}

// HashPassword genera el hash bcrypt (con sal) de la contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("usuario: hashear password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara la contraseña con el hash usando la verificación de bcrypt.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ToUserResponse convierte la entidad en DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
