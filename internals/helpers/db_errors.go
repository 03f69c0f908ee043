package helper

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE / MySQL error numbers we care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// ClassifyDBError maps driver-level failures onto the error taxonomy.
// Unknown errors come back as KindInternal.
func ClassifyDBError(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return KindDuplicate
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return KindReference
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPG(pgErr.Code, pgErr.Message)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPG(string(pqErr.Code), pqErr.Message)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return KindDuplicate
		case mysqlRowIsReferenced:
			return KindReferencedElsewhere
		case mysqlNoReferencedRow:
			return KindReference
		}
		return KindInternal
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint failed"), strings.Contains(msg, "duplicate key"):
		return KindDuplicate
	case strings.Contains(msg, "foreign key constraint failed"):
		return KindReference
	}
	return KindInternal
}

func classifyPG(code, msg string) ErrorKind {
	switch code {
	case pgUniqueViolation:
		return KindDuplicate
	case pgForeignKeyViolation:
		if strings.Contains(strings.ToLower(msg), "still referenced") {
			return KindReferencedElsewhere
		}
		return KindReference
	}
	return KindInternal
}

// WrapDBError converts err into an *AppError with a message naming entity.
func WrapDBError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return err
	}
	switch ClassifyDBError(err) {
	case KindNotFound:
		return &AppError{Kind: KindNotFound, Message: entity + " not found", Err: err}
	case KindDuplicate:
		return &AppError{Kind: KindDuplicate, Message: entity + " already exists", Err: err}
	case KindReference:
		return &AppError{Kind: KindReference, Message: "Referenced entity does not exist", Err: err}
	case KindReferencedElsewhere:
		return &AppError{Kind: KindReferencedElsewhere, Message: entity + " is referenced by other records", Err: err}
	}
	return NewInternalError(err)
}

// WrapDBDeleteError is WrapDBError for deletes: any foreign-key failure on
// a delete means the row is still referenced.
func WrapDBDeleteError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if k := ClassifyDBError(err); k == KindReference || k == KindReferencedElsewhere {
		return &AppError{Kind: KindReferencedElsewhere, Message: entity + " is referenced by other records", Err: err}
	}
	return WrapDBError(err, entity)
}
