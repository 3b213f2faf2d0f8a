package dao

import (
	"context"

	"agentw/agentw/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletDAO struct {
	DB *gorm.DB
}

func NewWalletDAO(db *gorm.DB) *WalletDAO {
	return &WalletDAO{DB: db}
}

func (dao *WalletDAO) GetByAddress(ctx context.Context, userAddress string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := dao.DB.WithContext(ctx).Where("user_address = ?", userAddress).First(&wallet).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetOrCreate inserts with ON CONFLICT DO NOTHING against the unique
// user_address index, then reads the row back. Concurrent first-contact
// requests both land on the same wallet.
func (dao *WalletDAO) GetOrCreate(ctx context.Context, userAddress string) (*models.Wallet, error) {
	wallet := models.Wallet{UserAddress: userAddress}
	err := dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_address"}},
			DoNothing: true,
		}).
		Create(&wallet).Error
	if err != nil {
		return nil, err
	}
	// The conflict path leaves the struct without its id.
	return dao.GetByAddress(ctx, userAddress)
}

func (dao *WalletDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&models.Wallet{}).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
