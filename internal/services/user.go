package services

import (
	"errors"

	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/internal/utils"
	"github.com/taskcamp/taskcamp/pkg/apperr"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserPatchRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (r *UserPatchRequest) empty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, err
	}
	return &user, nil
}

// Update patches the caller's own account.
func (s *UserService) Update(userID uint, req *UserPatchRequest) (*models.User, error) {
	if req.empty() {
		return nil, apperr.BadRequest("No data to update")
	}

	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		var count int64
		s.db.Model(&models.User{}).
			Where("username = ? AND id != ?", *req.Username, userID).
			Count(&count)
		if count > 0 {
			return nil, apperr.Conflict("Username is already taken")
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the caller's own account and revokes their refresh tokens.
// Owned projects and memberships are left to database cascade rules.
func (s *UserService) Delete(userID uint) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PersonalTask{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
