package dao

import (
	"context"
	"time"

	"agentw/agentw/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionDAO struct {
	DB *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{DB: db}
}

func (dao *SessionDAO) GetByID(ctx context.Context, id string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (dao *SessionDAO) Create(ctx context.Context, userAddress, title string) (*models.ChatSession, error) {
	now := time.Now()
	session := models.ChatSession{
		ID:          uuid.NewString(),
		UserAddress: userAddress,
		Title:       title,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := dao.DB.WithContext(ctx).Create(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch refreshes updated_at on an existing session.
func (dao *SessionDAO) Touch(ctx context.Context, id string) error {
	return dao.DB.WithContext(ctx).
		Model(&models.ChatSession{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (dao *SessionDAO) ListByUser(ctx context.Context, userAddress string) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := dao.DB.WithContext(ctx).
		Where("user_address = ?", userAddress).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
