package repos

import (
  "errors"
  "github.com/jackc/pgx/v5/pgconn"
  "gorm.io/gorm"
)

var (
  // ErrNotFound indicates the requested row does not exist.
  ErrNotFound = errors.New("row not found")
  // ErrDuplicate indicates a unique constraint violation.
  ErrDuplicate = errors.New("duplicate row")
)

// classify maps driver-level errors onto the repo sentinels so callers can
// branch with errors.Is without importing pgx.
func classify(err error) error {
  if err == nil {
    return nil
  }
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return errors.Join(ErrNotFound, err)
  }
  var pgErr *pgconn.PgError
  if errors.As(err, &pgErr) && pgErr.Code == "23505" {
    return errors.Join(ErrDuplicate, err)
  }
  return err
}
