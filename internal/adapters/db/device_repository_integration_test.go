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

type DeviceRepositorySuite struct {
	suite.Suite
	testDB *helpers.TestDB
	repo   ports.DeviceRepository
	ctx    context.Context
}

func (s *DeviceRepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.repo = db.NewDeviceRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *DeviceRepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

func (s *DeviceRepositorySuite) TestSave() {
	device := helpers.CreateTestDevice()

	err := s.repo.Save(s.ctx, device)
	s.NoError(err)
	s.NotEqual(uuid.Nil, device.ID)

	saved, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, device.ID)
	s.NoError(err)
	s.NotNil(saved)
	helpers.CompareDevices(s.T(), device, saved)
	s.NotNil(saved.RamGB)
	s.Equal(8, *saved.RamGB)
}

func (s *DeviceRepositorySuite) TestSaveBatch() {
	devices := helpers.CreateTestDevices(3)

	err := s.repo.SaveBatch(s.ctx, devices)
	s.NoError(err)

	for _, device := range devices {
		saved, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, device.ID)
		s.NoError(err)
		s.NotNil(saved)
		s.Equal(device.Model, saved.Model)
	}
}

func (s *DeviceRepositorySuite) TestUpdate() {
	device := helpers.CreateTestDevice()
	s.NoError(s.repo.Save(s.ctx, device))

	device.Model = "Galaxy S24"
	device.BasePrice = decimal.NewFromFloat(550)
	device.Quantity = 2

	err := s.repo.Update(s.ctx, device)
	s.NoError(err)

	updated, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, device.ID)
	s.NoError(err)
	s.Equal("Galaxy S24", updated.Model)
	s.True(decimal.NewFromFloat(550).Equal(updated.BasePrice))
	s.Equal(2, updated.Quantity)
}

func (s *DeviceRepositorySuite) TestUpdate_MissingDevice() {
	device := helpers.CreateTestDevice()

	err := s.repo.Update(s.ctx, device)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *DeviceRepositorySuite) TestFindByID() {
	s.Run("existing_device", func() {
		device := helpers.CreateTestDevice()
		s.NoError(s.repo.Save(s.ctx, device))

		found, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, device.ID)
		s.NoError(err)
		s.NotNil(found)
		s.Equal(device.ID, found.ID)
	})

	s.Run("non_existent_device", func() {
		found, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, uuid.New())
		s.NoError(err)
		s.Nil(found)
	})

	s.Run("other_dealers_device", func() {
		device := helpers.CreateTestDevice()
		s.NoError(s.repo.Save(s.ctx, device))

		found, err := s.repo.FindByID(s.ctx, "dealer-someone-else", device.ID)
		s.NoError(err)
		s.Nil(found)

		// The row itself still exists
		exists, err := s.repo.Exists(s.ctx, device.ID)
		s.NoError(err)
		s.True(exists)
	})
}

func (s *DeviceRepositorySuite) TestDelete() {
	device := helpers.CreateTestDevice()
	s.NoError(s.repo.Save(s.ctx, device))

	err := s.repo.Delete(s.ctx, device.ID)
	s.NoError(err)

	exists, err := s.repo.Exists(s.ctx, device.ID)
	s.NoError(err)
	s.False(exists)

	err = s.repo.Delete(s.ctx, device.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *DeviceRepositorySuite) TestUpdateStatusBatch() {
	devices := helpers.CreateTestDevices(3)
	s.NoError(s.repo.SaveBatch(s.ctx, devices))

	ids := []uuid.UUID{devices[0].ID, devices[1].ID}
	err := s.repo.UpdateStatusBatch(s.ctx, helpers.TestDealerID, ids, domain.StatusSold)
	s.NoError(err)

	for _, id := range ids {
		device, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, id)
		s.NoError(err)
		s.Equal(domain.StatusSold, device.Status)
	}

	untouched, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, devices[2].ID)
	s.NoError(err)
	s.Equal(domain.StatusAvailable, untouched.Status)
}

func (s *DeviceRepositorySuite) TestUpdateStatusBatch_PartialMatchFails() {
	device := helpers.CreateTestDevice()
	s.NoError(s.repo.Save(s.ctx, device))

	ids := []uuid.UUID{device.ID, uuid.New()}
	err := s.repo.UpdateStatusBatch(s.ctx, helpers.TestDealerID, ids, domain.StatusSold)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *DeviceRepositorySuite) TestDecrementQuantityTx() {
	s.Run("decrements_stock", func() {
		device := helpers.CreateTestDevice(func(d *domain.Device) {
			d.Quantity = 5
		})
		s.NoError(s.repo.Save(s.ctx, device))

		err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
			applied, err := s.repo.DecrementQuantityTx(s.ctx, tx, helpers.TestDealerID, device.ID, 2)
			s.True(applied)
			return err
		})
		s.NoError(err)

		updated, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, device.ID)
		s.NoError(err)
		s.Equal(3, updated.Quantity)
		s.Equal(domain.StatusAvailable, updated.Status)
	})

	s.Run("last_unit_marks_sold", func() {
		device := helpers.CreateTestDevice(func(d *domain.Device) {
			d.Quantity = 1
		})
		s.NoError(s.repo.Save(s.ctx, device))

		err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
			applied, err := s.repo.DecrementQuantityTx(s.ctx, tx, helpers.TestDealerID, device.ID, 1)
			s.True(applied)
			return err
		})
		s.NoError(err)

		updated, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, device.ID)
		s.NoError(err)
		s.Equal(0, updated.Quantity)
		s.Equal(domain.StatusSold, updated.Status)
	})

	s.Run("insufficient_stock_errors", func() {
		device := helpers.CreateTestDevice(func(d *domain.Device) {
			d.Quantity = 1
		})
		s.NoError(s.repo.Save(s.ctx, device))

		err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
			_, err := s.repo.DecrementQuantityTx(s.ctx, tx, helpers.TestDealerID, device.ID, 3)
			return err
		})
		s.ErrorIs(err, domain.ErrInsufficientStock)

		// Quantity untouched
		updated, err := s.repo.FindByID(s.ctx, helpers.TestDealerID, device.ID)
		s.NoError(err)
		s.Equal(1, updated.Quantity)
	})

	s.Run("missing_device_is_not_applied", func() {
		err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
			applied, err := s.repo.DecrementQuantityTx(s.ctx, tx, helpers.TestDealerID, uuid.New(), 1)
			s.False(applied)
			return err
		})
		s.NoError(err)
	})
}

func (s *DeviceRepositorySuite) TestFindBrandTx() {
	device := helpers.CreateTestDevice()
	s.NoError(s.repo.Save(s.ctx, device))

	err := s.testDB.Database.Transaction(s.ctx, func(tx pgx.Tx) error {
		brand, err := s.repo.FindBrandTx(s.ctx, tx, helpers.TestDealerID, device.ID)
		s.Equal("Samsung", brand)
		if err != nil {
			return err
		}

		brand, err = s.repo.FindBrandTx(s.ctx, tx, helpers.TestDealerID, uuid.New())
		s.Empty(brand)
		return err
	})
	s.NoError(err)
}

func (s *DeviceRepositorySuite) TestFindAll_Pagination() {
	for i := 0; i < 25; i++ {
		device := helpers.CreateTestDevice(func(d *domain.Device) {
			d.Model = fmt.Sprintf("Model %02d", i)
			d.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		})
		s.NoError(s.repo.Save(s.ctx, device))
	}

	params := ports.DeviceListParams{
		Page:      1,
		PageSize:  10,
		SortOrder: "desc",
	}

	devices, totalCount, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, params)
	s.NoError(err)
	s.Len(devices, 10)
	s.Equal(int64(25), totalCount)
	s.Equal("Model 24", devices[0].Model)

	params.Page = 3
	devices, totalCount, err = s.repo.FindAll(s.ctx, helpers.TestDealerID, params)
	s.NoError(err)
	s.Len(devices, 5)
	s.Equal(int64(25), totalCount)
}

func (s *DeviceRepositorySuite) TestFindAll_Filtering() {
	brands := []string{"Samsung", "Apple", "Xiaomi"}
	for i, brand := range brands {
		for j := 0; j < 3; j++ {
			device := helpers.CreateTestDevice(func(d *domain.Device) {
				d.Brand = brand
				d.Model = fmt.Sprintf("%s Model %d", brand, j)
				d.IsPublic = i == 0
				if j == 2 {
					d.Quantity = 0
					d.Status = domain.StatusSold
				}
			})
			s.NoError(s.repo.Save(s.ctx, device))
		}
	}

	devices, totalCount, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DeviceListParams{
		Brand:    "Apple",
		PageSize: 10,
	})
	s.NoError(err)
	s.Len(devices, 3)
	s.Equal(int64(3), totalCount)

	devices, totalCount, err = s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DeviceListParams{
		Status:   "sold",
		PageSize: 10,
	})
	s.NoError(err)
	s.Len(devices, 3)

	isPublic := true
	devices, totalCount, err = s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DeviceListParams{
		IsPublic: &isPublic,
		PageSize: 10,
	})
	s.NoError(err)
	s.Len(devices, 3)
	for _, d := range devices {
		s.Equal("Samsung", d.Brand)
	}
}

func (s *DeviceRepositorySuite) TestFindAll_Search() {
	models := []string{"Galaxy S23 Ultra", "Galaxy A54", "Redmi Note 12"}
	for _, model := range models {
		device := helpers.CreateTestDevice(func(d *domain.Device) {
			d.Model = model
			if model == "Redmi Note 12" {
				d.Brand = "Xiaomi"
			}
		})
		s.NoError(s.repo.Save(s.ctx, device))
	}

	devices, totalCount, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DeviceListParams{
		Search:   "galaxy",
		PageSize: 10,
	})
	s.NoError(err)
	s.Len(devices, 2)
	s.Equal(int64(2), totalCount)

	devices, _, err = s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DeviceListParams{
		Search:   "xiaomi",
		PageSize: 10,
	})
	s.NoError(err)
	s.Len(devices, 1)
	s.Equal("Redmi Note 12", devices[0].Model)
}

func (s *DeviceRepositorySuite) TestDealerIsolation() {
	mine := helpers.CreateTestDevice()
	s.NoError(s.repo.Save(s.ctx, mine))

	theirs := helpers.CreateTestDevice(func(d *domain.Device) {
		d.DealerID = "dealer-other"
		d.Model = "Other Dealer Phone"
	})
	s.NoError(s.repo.Save(s.ctx, theirs))

	devices, totalCount, err := s.repo.FindAll(s.ctx, helpers.TestDealerID, ports.DeviceListParams{PageSize: 10})
	s.NoError(err)
	s.Len(devices, 1)
	s.Equal(int64(1), totalCount)
	s.Equal(mine.ID, devices[0].ID)
}

func TestDeviceRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DeviceRepositorySuite))
}
