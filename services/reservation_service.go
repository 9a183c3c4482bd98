package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/ambatoeat-api/events"
	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/policy"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationService struct {
	db        *gorm.DB
	tables    *TableService
	publisher events.Publisher
	now       func() time.Time
}

func NewReservationService(db *gorm.DB, tables *TableService, publisher events.Publisher) *ReservationService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ReservationService{
		db:        db,
		tables:    tables,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create books tableID at date for userID. The table row is locked for the duration of the
// check-and-insert so two callers cannot both pass the availability checks.
func (s *ReservationService) Create(ctx context.Context, userID, tableID uint, date time.Time) (*models.Reservation, error) {
	if tableID == 0 || date.IsZero() {
		return nil, ErrReservationFieldsRequired
	}
	date = SlotTime(date)

	var res models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return fmt.Errorf("load table: %w", err)
		}

		if table.Status != models.TableAvailable {
			return ErrTableUnavailable
		}

		var taken int64
		err := tx.Model(&models.Reservation{}).
			Where("table_id = ? AND reservation_date = ? AND status = ? AND deleted_at IS NULL",
				tableID, date, models.ReservationActive).
			Count(&taken).Error
		if err != nil {
			return fmt.Errorf("check slot: %w", err)
		}
		if taken > 0 {
			return ErrSlotTaken
		}

		res = models.Reservation{
			UserID:          userID,
			TableID:         tableID,
			ReservationDate: date,
			Status:          models.ReservationActive,
		}
		if err := tx.Create(&res).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert reservation: %w", err)
		}

		err = tx.Model(&models.Table{}).Where("id = ?", tableID).Update("status", models.TableReserved).Error
		if err != nil {
			return fmt.Errorf("mark table reserved: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, res.ID)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d created: table=%d user=%d at %s",
		created.ID, tableID, userID, date.Format(time.RFC3339))
	s.publish(ctx, events.ReservationCreated, userID, *created)
	return created, nil
}

// Get loads one reservation with its table and owner.
func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := s.db.WithContext(ctx).Preload("Table").First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("load reservation: %w", err)
	}

	list := []models.Reservation{res}
	if err := s.attachUsers(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// ListAll returns every reservation, soft-cancelled ones included, newest slot first.
func (s *ReservationService) ListAll(ctx context.Context) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.db.WithContext(ctx).
		Preload("Table").
		Order("reservation_date desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if err := s.attachUsers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListMine returns the caller's reservations that were not soft-cancelled.
func (s *ReservationService) ListMine(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.db.WithContext(ctx).
		Preload("Table").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("reservation_date desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list user reservations: %w", err)
	}
	return list, nil
}

// SoftCancel marks the reservation deleted and COMPLETED and frees its table.
func (s *ReservationService) SoftCancel(ctx context.Context, id uint, caller policy.Identity) (*models.Reservation, error) {
	var tableID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}
		if !policy.CanCancelReservation(caller, *res) {
			return ErrNotOwner
		}

		err = tx.Model(&models.Reservation{}).Where("id = ?", id).Updates(map[string]interface{}{
			"deleted_at": s.now().UTC(),
			"status":     models.ReservationCompleted,
		}).Error
		if err != nil {
			return fmt.Errorf("cancel reservation: %w", err)
		}

		tableID = res.TableID
		return s.tables.Release(ctx, tx, res.TableID)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d canceled by user %d", id, caller.UserID)
	s.publish(ctx, events.ReservationCanceled, caller.UserID, *updated)
	s.publishRelease(ctx, caller.UserID, tableID)
	return updated, nil
}

// HardDelete removes the reservation row and frees its table.
func (s *ReservationService) HardDelete(ctx context.Context, id uint, caller policy.Identity) error {
	var removed models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}
		removed = *res

		if err := tx.Delete(&models.Reservation{}, id).Error; err != nil {
			return fmt.Errorf("delete reservation: %w", err)
		}
		return s.tables.Release(ctx, tx, res.TableID)
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Reservation %d deleted by admin %d", id, caller.UserID)
	s.publish(ctx, events.ReservationDeleted, caller.UserID, removed)
	s.publishRelease(ctx, caller.UserID, removed.TableID)
	return nil
}

// Stats summarizes reservations and tables for the admin dashboard.
type Stats struct {
	TotalReservations  int64            `json:"totalReservations"`
	ReservationsStatus map[string]int64 `json:"reservationsByStatus"`
	Canceled           int64            `json:"canceled"`
	Upcoming           int64            `json:"upcoming"`
	TotalTables        int64            `json:"totalTables"`
	TablesStatus       map[string]int64 `json:"tablesByStatus"`
}

type statusCount struct {
	Status string
	Total  int64
}

func (s *ReservationService) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	stats := &Stats{
		ReservationsStatus: map[string]int64{},
		TablesStatus:       map[string]int64{},
	}

	var rows []statusCount
	if err := db.Model(&models.Reservation{}).Select("status, count(*) as total").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	for _, r := range rows {
		stats.ReservationsStatus[r.Status] = r.Total
		stats.TotalReservations += r.Total
	}

	if err := db.Model(&models.Reservation{}).Where("deleted_at IS NOT NULL").Count(&stats.Canceled).Error; err != nil {
		return nil, fmt.Errorf("count canceled: %w", err)
	}

	err := db.Model(&models.Reservation{}).
		Where("status = ? AND deleted_at IS NULL AND reservation_date >= ?", models.ReservationActive, SlotTime(s.now())).
		Count(&stats.Upcoming).Error
	if err != nil {
		return nil, fmt.Errorf("count upcoming: %w", err)
	}

	rows = nil
	if err := db.Model(&models.Table{}).Select("status, count(*) as total").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count tables: %w", err)
	}
	for _, r := range rows {
		stats.TablesStatus[r.Status] = r.Total
		stats.TotalTables += r.Total
	}

	return stats, nil
}

func (s *ReservationService) lockReservation(tx *gorm.DB, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("load reservation: %w", err)
	}
	return &res, nil
}

// attachUsers fills the public user projection without exposing password hashes.
func (s *ReservationService) attachUsers(ctx context.Context, list []models.Reservation) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(list))
	seen := make(map[uint]bool, len(list))
	for _, r := range list {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}

	var users []models.UserSummary
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("id, name, email, phone").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return fmt.Errorf("load reservation users: %w", err)
	}

	byID := make(map[uint]models.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range list {
		if u, ok := byID[list[i].UserID]; ok {
			u := u
			list[i].User = &u
		}
	}
	return nil
}

func (s *ReservationService) publish(ctx context.Context, name string, actor uint, res models.Reservation) {
	e := events.New(name, res)
	e.ReservationID = res.ID
	e.TableID = res.TableID
	e.ActorID = actor
	_ = s.publisher.Publish(ctx, e)
}

func (s *ReservationService) publishRelease(ctx context.Context, actor, tableID uint) {
	e := events.New(events.TableReleased, map[string]interface{}{
		"id":     tableID,
		"status": models.TableAvailable,
	})
	e.TableID = tableID
	e.ActorID = actor
	_ = s.publisher.Publish(ctx, e)
}
