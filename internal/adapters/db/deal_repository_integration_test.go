//go:build integration
// +build integration

package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/test/helpers"
)

type DealRepositorySuite struct {
	suite.Suite
	testDB *helpers.TestDB
	repo   ports.DealRepository
	ctx    context.Context
}

func (s *DealRepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.repo = db.NewDealRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *DealRepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

func (s *DealRepositorySuite) saveDeal(deal *domain.Deal) {
	s.T().Helper()
	err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
		return s.repo.SaveTx(s.ctx, tx, deal)
	})
	s.Require().NoError(err)
}

func (s *DealRepositorySuite) TestSaveTxAndFindByID() {
	deal := helpers.CreateTestDeal()
	s.saveDeal(deal)

	found, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, deal.ID)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal(deal.CustomerName, found.CustomerName)
	s.Equal(deal.Contact, found.Contact)
	s.Equal(domain.DealStatusPaid, found.Status)
	s.Equal(domain.PaymentCash, found.PaymentMode)
	s.True(deal.TotalAmount.Equal(found.TotalAmount))

	// Phone lines round-trip through the JSONB column
	s.Require().Len(found.Phones, 1)
	s.Equal("Galaxy S23", found.Phones[0].Model)
	s.Require().NotNil(found.Phones[0].Condition)
	s.Equal("good", *found.Phones[0].Condition)
	s.Require().NotNil(found.Phones[0].PhoneID)
	s.Equal(*deal.Phones[0].PhoneID, *found.Phones[0].PhoneID)
}

func (s *DealRepositorySuite) TestFindByID_Missing() {
	found, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, uuid.New())
	s.NoError(err)
	s.Nil(found)
}

func (s *DealRepositorySuite) TestFindByID_OtherDealer() {
	deal := helpers.CreateTestDeal()
	s.saveDeal(deal)

	found, err := s.repo.FindByID(s.ctx, "dealer-other", deal.ID)
	s.NoError(err)
	s.Nil(found)
}

func (s *DealRepositorySuite) TestSaveSoldUnitsAndFindByDeal() {
	deal := helpers.CreateTestDeal()
	s.saveDeal(deal)

	units := []domain.SoldUnit{
		helpers.CreateTestSoldUnit(func(u *domain.SoldUnit) {
			u.DealID = deal.ID
			u.Model = "Galaxy S23"
			u.SoldAt = time.Now().AddDate(0, 0, -2)
		}),
		helpers.CreateTestSoldUnit(func(u *domain.SoldUnit) {
			u.DealID = deal.ID
			u.Model = "Galaxy A54"
			u.SoldAt = time.Now().AddDate(0, 0, -1)
		}),
	}

	err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
		return s.repo.SaveSoldUnitsTx(s.ctx, tx, units)
	})
	s.NoError(err)

	found, err := s.repo.FindSoldUnitsByDeal(s.ctx, helpers.TestDealerID, deal.ID)
	s.NoError(err)
	s.Require().Len(found, 2)

	// Oldest sale first
	s.Equal("Galaxy S23", found[0].Model)
	s.Equal("Galaxy A54", found[1].Model)
	s.Equal(deal.ID, found[0].DealID)
}

func (s *DealRepositorySuite) TestFindAll() {
	for i := 0; i < 3; i++ {
		deal := helpers.CreateTestDeal(func(d *domain.Deal) {
			d.CustomerName = fmt.Sprintf("Retail Customer %d", i)
			d.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		})
		s.saveDeal(deal)
	}
	for i := 0; i < 2; i++ {
		deal := helpers.CreateTestDeal(func(d *domain.Deal) {
			d.CustomerName = fmt.Sprintf("Wholesale Customer %d", i)
			d.DealType = domain.DealWholesale
			d.Status = domain.DealStatusPending
			d.PaymentMode = domain.PaymentCredit
		})
		s.saveDeal(deal)
	}

	s.Run("no_filter_returns_everything", func() {
		deals, totalCount, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DealListParams{PageSize: 10})
		s.NoError(err)
		s.Len(deals, 5)
		s.Equal(int64(5), totalCount)

		// Oldest first by default
		s.Equal("Retail Customer 0", deals[0].CustomerName)
	})

	s.Run("filter_by_deal_type", func() {
		deals, totalCount, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DealListParams{
			DealType: "wholesale",
			PageSize: 10,
		})
		s.NoError(err)
		s.Len(deals, 2)
		s.Equal(int64(2), totalCount)
	})

	s.Run("filter_by_status", func() {
		deals, _, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DealListParams{
			Status:   string(domain.DealStatusPending),
			PageSize: 10,
		})
		s.NoError(err)
		s.Len(deals, 2)
		for _, d := range deals {
			s.Equal(domain.DealStatusPending, d.Status)
		}
	})

	s.Run("pagination", func() {
		deals, totalCount, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DealListParams{
			Page:     2,
			PageSize: 3,
		})
		s.NoError(err)
		s.Len(deals, 2)
		s.Equal(int64(5), totalCount)
	})
}

func (s *DealRepositorySuite) TestUpdateStatus() {
	deal := helpers.CreateTestDeal(func(d *domain.Deal) {
		d.Status = domain.DealStatusPending
		d.PaymentMode = domain.PaymentCredit
	})
	s.saveDeal(deal)

	err := s.repo.UpdateStatus(s.ctx, helpers.TestDealerID, deal.ID, domain.DealStatusPaid)
	s.NoError(err)

	updated, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, deal.ID)
	s.NoError(err)
	s.Equal(domain.DealStatusPaid, updated.Status)

	err = s.repo.UpdateStatus(s.ctx, helpers.TestDealerID, uuid.New(), domain.DealStatusPaid)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *DealRepositorySuite) TestDelete_KeepsSoldUnits() {
	deal := helpers.CreateTestDeal()
	s.saveDeal(deal)

	unit := helpers.CreateTestSoldUnit(func(u *domain.SoldUnit) {
		u.DealID = deal.ID
	})
	err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
		return s.repo.SaveSoldUnitsTx(s.ctx, tx, []domain.SoldUnit{unit})
	})
	s.NoError(err)

	s.NoError(s.repo.Delete(s.ctx, helpers.TestDealerID, deal.ID))

	found, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, deal.ID)
	s.NoError(err)
	s.Nil(found)

	// Sales history survives deal deletion
	units, err := s.repo.FindSoldUnitsByDeal(s.ctx, helpers.TestDealerID, deal.ID)
	s.NoError(err)
	s.Len(units, 1)

	err = s.repo.Delete(s.ctx, helpers.TestDealerID, deal.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *DealRepositorySuite) TestFindRecentSoldUnits() {
	units := []domain.SoldUnit{
		helpers.CreateTestSoldUnit(func(u *domain.SoldUnit) {
			u.Brand = "Samsung"
			u.Model = "Galaxy S23"
			u.Price = decimal.NewFromInt(440)
			u.SoldAt = time.Now().AddDate(0, 0, -3)
		}),
		helpers.CreateTestSoldUnit(func(u *domain.SoldUnit) {
			u.Brand = "Samsung"
			u.Model = "Galaxy S23"
			u.DealType = domain.DealWholesale
			u.Price = decimal.NewFromInt(400)
			u.SoldAt = time.Now().AddDate(0, 0, -1)
		}),
		helpers.CreateTestSoldUnit(func(u *domain.SoldUnit) {
			u.Brand = "Apple"
			u.Model = "iPhone 14"
			u.Price = decimal.NewFromInt(700)
			u.SoldAt = time.Now().AddDate(0, 0, -2)
		}),
	}
	err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
		return s.repo.SaveSoldUnitsTx(s.ctx, tx, units)
	})
	s.NoError(err)

	s.Run("narrows_by_brand_and_model", func() {
		found, err := s.repo.FindRecentSoldUnits(s.ctx, helpers.TestDealerID, "Samsung", "Galaxy S23", false, 10)
		s.NoError(err)
		s.Require().Len(found, 2)

		// Newest sale first
		s.Equal(domain.DealWholesale, found[0].DealType)
	})

	s.Run("brand_only", func() {
		found, err := s.repo.FindRecentSoldUnits(s.ctx, helpers.TestDealerID, "Apple", "", false, 10)
		s.NoError(err)
		s.Require().Len(found, 1)
		s.Equal("iPhone 14", found[0].Model)
	})

	s.Run("wholesale_only", func() {
		found, err := s.repo.FindRecentSoldUnits(s.ctx, helpers.TestDealerID, "Samsung", "Galaxy S23", true, 10)
		s.NoError(err)
		s.Require().Len(found, 1)
		s.True(decimal.NewFromInt(400).Equal(found[0].Price))
	})

	s.Run("respects_limit", func() {
		found, err := s.repo.FindRecentSoldUnits(s.ctx, helpers.TestDealerID, "Samsung", "", false, 1)
		s.NoError(err)
		s.Require().Len(found, 1)
		s.Equal(domain.DealWholesale, found[0].DealType)
	})
}

func TestDealRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DealRepositorySuite))
}
