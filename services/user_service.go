package services

import (
    "context"
    "errors"

    "backend/models"
    "backend/utils"

    "gorm.io/gorm"
)

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func (s *UserService) Register(ctx context.Context, email, password, fullName string) error {
    hashedPassword, err := utils.HashPassword(password)
    if err != nil {
        return err
    }

    user := models.User{
        Email:    email,
        Password: hashedPassword,
        FullName: fullName,
    }
    if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return errors.New("email is already registered")
        }
        return err
    }
    return nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
    var user models.User
    if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
        return "", errors.New("user not found")
    }

    if !utils.CheckPasswordHash(password, user.Password) {
        return "", errors.New("incorrect password")
    }

    return utils.GenerateJWT(user.ID, user.Email)
}
