package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/ambatoeat-api/events"
	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewTableService(db *gorm.DB, publisher events.Publisher) *TableService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &TableService{db: db, publisher: publisher}
}

// SlotTime normalizes a reservation timestamp so equal instants compare equal in every dialect.
func SlotTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.WithContext(ctx).Order("table_number asc").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// Available returns tables not under maintenance and not held by an active reservation at exactly date.
func (s *TableService) Available(ctx context.Context, date time.Time) ([]models.Table, error) {
	held := s.db.Model(&models.Reservation{}).
		Select("table_id").
		Where("reservation_date = ? AND status = ? AND deleted_at IS NULL", SlotTime(date), models.ReservationActive)

	var tables []models.Table
	err := s.db.WithContext(ctx).
		Where("status <> ?", models.TableMaintenance).
		Where("id NOT IN (?)", held).
		Order("table_number asc").
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("list available tables: %w", err)
	}
	return tables, nil
}

// Release marks the table AVAILABLE. Other reservations on the table are not consulted.
func (s *TableService) Release(ctx context.Context, tx *gorm.DB, tableID uint) error {
	err := tx.WithContext(ctx).Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("status", models.TableAvailable).Error
	if err != nil {
		return fmt.Errorf("release table %d: %w", tableID, err)
	}
	return nil
}

func (s *TableService) Create(ctx context.Context, tableNumber, capacity int) (*models.Table, error) {
	if tableNumber <= 0 || capacity <= 0 {
		return nil, ErrTableFieldsRequired
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Table{}).Where("table_number = ?", tableNumber).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check table number: %w", err)
	}
	if count > 0 {
		return nil, ErrTableNumberTaken
	}

	table := models.Table{
		TableNumber: tableNumber,
		Capacity:    capacity,
		Status:      models.TableAvailable,
	}
	if err := s.db.WithContext(ctx).Create(&table).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrTableNumberTaken
		}
		return nil, fmt.Errorf("create table: %w", err)
	}

	utils.InfoLogger.Printf("New table created: #%d (capacity=%d)", table.TableNumber, table.Capacity)
	s.publish(ctx, events.TableCreated, table)
	return &table, nil
}

// TableUpdate carries the fields an admin may change. Nil fields are left alone.
type TableUpdate struct {
	TableNumber *int
	Capacity    *int
	Status      *string
}

func (s *TableService) Update(ctx context.Context, id uint, upd TableUpdate) (*models.Table, error) {
	var table models.Table
	if err := s.db.WithContext(ctx).First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("load table: %w", err)
	}

	if upd.TableNumber != nil && *upd.TableNumber > 0 && *upd.TableNumber != table.TableNumber {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Table{}).Where("table_number = ?", *upd.TableNumber).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check table number: %w", err)
		}
		if count > 0 {
			return nil, ErrTableNumberTaken
		}
		table.TableNumber = *upd.TableNumber
	}
	if upd.Capacity != nil && *upd.Capacity > 0 {
		table.Capacity = *upd.Capacity
	}
	if upd.Status != nil && *upd.Status != "" {
		if !models.ValidTableStatus(*upd.Status) {
			return nil, ErrInvalidTableStatus
		}
		table.Status = *upd.Status
	}

	if err := s.db.WithContext(ctx).Save(&table).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrTableNumberTaken
		}
		return nil, fmt.Errorf("update table: %w", err)
	}

	utils.InfoLogger.Printf("Table %d updated (number=%d, status=%s)", table.ID, table.TableNumber, table.Status)
	s.publish(ctx, events.TableUpdated, table)
	return &table, nil
}

// Delete refuses while any reservation still references the table. Reservation rows are never
// removed along with it.
func (s *TableService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return fmt.Errorf("load table: %w", err)
		}

		var active int64
		err := tx.Model(&models.Reservation{}).
			Where("table_id = ? AND status = ? AND deleted_at IS NULL", id, models.ReservationActive).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("count active reservations: %w", err)
		}
		if active > 0 {
			return ErrTableInUse
		}

		var history int64
		if err := tx.Model(&models.Reservation{}).Where("table_id = ?", id).Count(&history).Error; err != nil {
			return fmt.Errorf("count reservations: %w", err)
		}
		if history > 0 {
			return ErrTableHasHistory
		}

		if err := tx.Delete(&table).Error; err != nil {
			return fmt.Errorf("delete table: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Table %d deleted", id)
	e := events.New(events.TableDeleted, map[string]uint{"id": id})
	e.TableID = id
	_ = s.publisher.Publish(ctx, e)
	return nil
}

func (s *TableService) publish(ctx context.Context, name string, data interface{}) {
	e := events.New(name, data)
	if t, ok := data.(models.Table); ok {
		e.TableID = t.ID
	}
	_ = s.publisher.Publish(ctx, e)
}
