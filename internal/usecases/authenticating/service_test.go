package authenticating

import (
	"testing"

	"github.com/almahq/crm-analytics-api/infrastructure/repository/mocks"
	"github.com/almahq/crm-analytics-api/internal/config"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func setupService(t *testing.T) (*mocks.MockUserRepository, Authenticator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo-de-teste"

	return userRepo, NewService(userRepo, cfg)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	t.Run("login com sucesso retorna token validável", func(t *testing.T) {
		userRepo, service := setupService(t)

		user := &domain.User{
			ID:           7,
			Name:         "Ana",
			Lastname:     "Souza",
			Email:        "ana@alma.com",
			Active:       true,
			RoleID:       2,
			PasswordHash: hashPassword(t, "Senha@123"),
		}
		userRepo.EXPECT().GetUserByEmail("ana@alma.com").Return(user, nil)

		token, err := service.LoginUser("Ana@Alma.com", "Senha@123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, 2, claims.UserRoleID)
	})

	t.Run("senha incorreta retorna erro de credenciais", func(t *testing.T) {
		userRepo, service := setupService(t)

		user := &domain.User{
			ID:           7,
			Email:        "ana@alma.com",
			Active:       true,
			PasswordHash: hashPassword(t, "Senha@123"),
		}
		userRepo.EXPECT().GetUserByEmail("ana@alma.com").Return(user, nil)

		_, err := service.LoginUser("ana@alma.com", "senha-errada")
		require.Error(t, err)

		authErr, ok := err.(*AuthError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrInvalidCredentials, authErr.Code)
	})

	t.Run("usuário inexistente retorna erro específico", func(t *testing.T) {
		userRepo, service := setupService(t)

		userRepo.EXPECT().GetUserByEmail("nao@existe.com").Return(nil, nil)

		_, err := service.LoginUser("nao@existe.com", "qualquer")
		require.Error(t, err)

		authErr, ok := err.(*AuthError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrUserNotFound, authErr.Code)
	})

	t.Run("conta desativada não autentica", func(t *testing.T) {
		userRepo, service := setupService(t)

		user := &domain.User{
			ID:           9,
			Email:        "inativo@alma.com",
			Active:       false,
			PasswordHash: hashPassword(t, "Senha@123"),
		}
		userRepo.EXPECT().GetUserByEmail("inativo@alma.com").Return(user, nil)

		_, err := service.LoginUser("inativo@alma.com", "Senha@123")
		require.Error(t, err)

		authErr, ok := err.(*AuthError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrUserDisabled, authErr.Code)
	})

	t.Run("email e senha vazios são rejeitados antes do banco", func(t *testing.T) {
		_, service := setupService(t)

		_, err := service.LoginUser("", "")
		require.Error(t, err)

		authErr, ok := err.(*AuthError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, authErr.Code)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("cria usuário com email normalizado e senha com hash", func(t *testing.T) {
		userRepo, service := setupService(t)

		userRepo.EXPECT().GetUserByEmail("novo@alma.com").Return(nil, nil)
		userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
			assert.Equal(t, "novo@alma.com", u.Email)
			assert.Equal(t, 3, u.RoleID)
			assert.False(t, u.Active)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Senha@123")))
			u.ID = 42
			return u, nil
		})

		created, err := service.CreateUser(&domain.User{
			Name:         "Novo",
			Lastname:     "Usuário",
			Email:        " Novo@Alma.com ",
			PasswordHash: "Senha@123",
		})
		require.NoError(t, err)
		assert.Equal(t, 42, created.ID)
	})

	t.Run("email já cadastrado retorna conflito", func(t *testing.T) {
		userRepo, service := setupService(t)

		userRepo.EXPECT().GetUserByEmail("ana@alma.com").Return(&domain.User{ID: 7}, nil)

		_, err := service.CreateUser(&domain.User{
			Name:         "Ana",
			Lastname:     "Souza",
			Email:        "ana@alma.com",
			PasswordHash: "Senha@123",
		})
		require.Error(t, err)

		authErr, ok := err.(*AuthError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrUserAlreadyExists, authErr.Code)
	})

	t.Run("dados obrigatórios ausentes são rejeitados", func(t *testing.T) {
		_, service := setupService(t)

		_, err := service.CreateUser(&domain.User{Name: "Sem", Lastname: "Email"})
		require.Error(t, err)

		authErr, ok := err.(*AuthError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, authErr.Code)
	})
}

func TestGenerateStrongPassword(t *testing.T) {
	t.Run("administrador gera senha forte para outro usuário", func(t *testing.T) {
		userRepo, service := setupService(t)

		admin := &domain.User{ID: 1, RoleID: 1}
		target := &domain.User{ID: 5, RoleID: 3, PasswordHash: "antiga"}

		userRepo.EXPECT().GetUserByID(1).Return(admin, nil)
		userRepo.EXPECT().GetUserByID(5).Return(target, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(u *domain.User) error {
			assert.NotEqual(t, "antiga", u.PasswordHash)
			return nil
		})

		password, err := service.GenerateStrongPassword(1, 5)
		require.NoError(t, err)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})

	t.Run("usuário sem perfil de administrador é bloqueado", func(t *testing.T) {
		userRepo, service := setupService(t)

		userRepo.EXPECT().GetUserByID(2).Return(&domain.User{ID: 2, RoleID: 2}, nil)

		_, err := service.GenerateStrongPassword(2, 5)
		assert.ErrorIs(t, err, ErrNoAdminPrivileges)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("altera senha quando a atual confere e a nova é forte", func(t *testing.T) {
		userRepo, service := setupService(t)

		user := &domain.User{ID: 7, PasswordHash: hashPassword(t, "Atual@123")}
		userRepo.EXPECT().GetUserByID(7).Return(user, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).Return(nil)

		err := service.ChangePassword(7, "Atual@123", "Nova@Senha1")
		require.NoError(t, err)
	})

	t.Run("nova senha igual à atual é rejeitada", func(t *testing.T) {
		userRepo, service := setupService(t)

		user := &domain.User{ID: 7, PasswordHash: hashPassword(t, "Atual@123")}
		userRepo.EXPECT().GetUserByID(7).Return(user, nil)

		err := service.ChangePassword(7, "Atual@123", "Atual@123")
		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("senha atual incorreta interrompe a troca", func(t *testing.T) {
		userRepo, service := setupService(t)

		user := &domain.User{ID: 7, PasswordHash: hashPassword(t, "Atual@123")}
		userRepo.EXPECT().GetUserByID(7).Return(user, nil)

		err := service.ChangePassword(7, "errada", "Nova@Senha1")
		require.Error(t, err)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	_, service := setupService(t)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"senha completa passa", "Forte@123", false},
		{"curta demais falha", "Ab@1", true},
		{"sem maiúscula falha", "fraca@123", true},
		{"sem número falha", "Fraca@abc", true},
		{"sem caractere especial falha", "Fraca1234", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
