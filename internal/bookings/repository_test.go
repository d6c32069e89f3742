package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func lockedScheduleRows(totalSeats, availableSeats int, departure time.Time, scheduleID, trainID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "train_id", "price", "departure_time", "total_seats", "available_seats"}).
		AddRow(scheduleID, trainID, 24.50, departure, totalSeats, availableSeats)
}

func userRows(userID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password", "contact", "address", "created_at", "updated_at"}).
		AddRow(userID, "Asha Verma", "asha@example.com", "hash", "555-0101", "12 Canal Street", time.Now(), time.Now())
}

func bookingDetailsRows(bookingID, userID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "pnr", "seat_number", "status", "created_at",
		"passenger_name", "passenger_email", "train_name",
		"departure_station", "arrival_station", "departure_time", "arrival_time",
		"amount", "payment_method", "payment_status", "transaction_id",
	}).AddRow(
		bookingID, userID, "PNR123456", "A1", BookingStatusConfirmed, now,
		"Asha Verma", "asha@example.com", "Coastal Express",
		"Central", "Harborview", now.Add(24*time.Hour), now.Add(28*time.Hour),
		24.50, "card", PaymentStatusCompleted, "TXN654321",
	)
}

func expectBookingWrites(mock sqlmock.Sqlmock, userID, trainID uuid.UUID) {
	mock.ExpectExec("SAVEPOINT sp_booking").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SAVEPOINT sp_payment").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(userID))
	mock.ExpectExec(`INSERT INTO "passengers"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "trains" SET "available_seats"`).WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestBookTicketSuccess(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	scheduleID := uuid.New()
	trainID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(lockedScheduleRows(100, 100, time.Now().Add(24*time.Hour), scheduleID, trainID))
	expectBookingWrites(mock, userID, trainID)
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT bookings.id, bookings.user_id, bookings.pnr").
		WillReturnRows(bookingDetailsRows(uuid.New(), userID))

	details, err := repo.BookTicket(context.Background(), userID, scheduleID, "card")
	require.NoError(t, err)
	assert.Equal(t, "PNR123456", details.PNR)
	assert.Equal(t, "A1", details.SeatNumber)
	assert.Equal(t, BookingStatusConfirmed, details.Status)
	assert.Equal(t, PaymentStatusCompleted, details.PaymentStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketScheduleNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "train_id", "price", "departure_time", "total_seats", "available_seats"}))
	mock.ExpectRollback()

	_, err := repo.BookTicket(context.Background(), uuid.New(), uuid.New(), "card")
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketNoSeatsRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(lockedScheduleRows(100, 0, time.Now().Add(24*time.Hour), uuid.New(), uuid.New()))
	mock.ExpectRollback()

	_, err := repo.BookTicket(context.Background(), uuid.New(), uuid.New(), "card")
	assert.ErrorIs(t, err, ErrSeatsUnavailable)

	// No inserts and no decrement happened.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketDepartedRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(lockedScheduleRows(100, 10, time.Now().Add(-time.Hour), uuid.New(), uuid.New()))
	mock.ExpectRollback()

	_, err := repo.BookTicket(context.Background(), uuid.New(), uuid.New(), "card")
	assert.ErrorIs(t, err, ErrScheduleDeparted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketUserMissingRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(lockedScheduleRows(100, 10, time.Now().Add(24*time.Hour), uuid.New(), uuid.New()))
	mock.ExpectExec("SAVEPOINT sp_booking").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SAVEPOINT sp_payment").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "contact", "address", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := repo.BookTicket(context.Background(), uuid.New(), uuid.New(), "card")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketRetriesPNRCollision(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	scheduleID := uuid.New()
	trainID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(lockedScheduleRows(100, 100, time.Now().Add(24*time.Hour), scheduleID, trainID))

	// First PNR hits the unique index, the savepoint rewinds, the retry lands.
	mock.ExpectExec("SAVEPOINT sp_booking").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_pnr"})
	mock.ExpectExec("ROLLBACK TO SAVEPOINT sp_booking").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SAVEPOINT sp_booking").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("SAVEPOINT sp_payment").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(userID))
	mock.ExpectExec(`INSERT INTO "passengers"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "trains" SET "available_seats"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT bookings.id, bookings.user_id, bookings.pnr").
		WillReturnRows(bookingDetailsRows(uuid.New(), userID))

	details, err := repo.BookTicket(context.Background(), userID, scheduleID, "card")
	require.NoError(t, err)
	assert.Equal(t, "PNR123456", details.PNR)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketPassengerInsertFailureRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(lockedScheduleRows(100, 10, time.Now().Add(24*time.Hour), uuid.New(), uuid.New()))
	mock.ExpectExec("SAVEPOINT sp_booking").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SAVEPOINT sp_payment").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(userID))
	mock.ExpectExec(`INSERT INTO "passengers"`).
		WillReturnError(&pgconn.PgError{Code: "53300"})
	mock.ExpectRollback()

	_, err := repo.BookTicket(context.Background(), userID, uuid.New(), "card")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSeatsUnavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPNRStatusNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT bookings.pnr, users.name").
		WillReturnRows(sqlmock.NewRows([]string{"pnr", "passenger_name", "train_name", "seat_number", "boarding_station", "status", "departure_time"}))

	_, err := repo.GetPNRStatus(context.Background(), "PNR000000")
	assert.ErrorIs(t, err, ErrPNRNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserPaymentsOrdersNewestFirst(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`ORDER BY payments.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"transaction_id", "amount", "payment_method", "status", "created_at",
			"pnr", "train_name", "departure_station", "arrival_station",
		}).
			AddRow("TXN000002", 31.00, "card", PaymentStatusCompleted, now, "PNR000002", "Highland Mail", "Central", "Hillcrest").
			AddRow("TXN000001", 24.50, "upi", PaymentStatusCompleted, now.Add(-time.Hour), "PNR000001", "Coastal Express", "Central", "Harborview"))

	entries, err := repo.GetUserPayments(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "TXN000002", entries[0].TransactionID)
	assert.Equal(t, "TXN000001", entries[1].TransactionID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
