package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/internal/entities"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
)

type EmployeeRepositoryInterface interface {
	FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error)
	FindByEmailAndActive(ctx context.Context, email string) (*entities.Employee, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetEmployees(ctx context.Context) ([]entities.Employee, error)
	CreateEmployee(ctx context.Context, employee entities.Employee) (uint64, error)
	SetActive(ctx context.Context, id uint64, isActive bool) error
}

type EmployeeRepository struct {
	storage *pgxpool.Pool
}

func NewEmployeeRepository(storage *pgxpool.Pool) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage}
}

var employeeSelectColumns = []string{
	"e.id", "e.role_id", "e.branch_id", "e.first_name", "e.last_name",
	"e.middle_name", "e.email", "e.phone", "e.password_hash", "e.is_active",
	"e.created_at",
	"r.code", "r.name",
	"b.name",
}

func employeeBaseQuery() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(employeeSelectColumns...).
		From("employees AS e").
		Join("roles r ON e.role_id = r.id").
		LeftJoin("branches b ON e.branch_id = b.id")
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	var role entities.Role
	var roleCode string
	var branchID sql.NullInt64
	var middleName, branchName sql.NullString

	err := row.Scan(
		&e.ID, &e.RoleID, &branchID, &e.FirstName, &e.LastName,
		&middleName, &e.Email, &e.Phone, &e.PasswordHash, &e.IsActive,
		&e.CreatedAt,
		&roleCode, &role.Name,
		&branchName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования сотрудника: %w", err)
	}

	if middleName.Valid {
		e.MiddleName = &middleName.String
	}
	if branchID.Valid {
		id := uint64(branchID.Int64)
		e.BranchID = &id
		if branchName.Valid {
			e.Branch = &entities.Branch{ID: id, Name: branchName.String}
		}
	}

	role.ID = e.RoleID
	role.Code = constants.RoleCode(roleCode)
	e.Role = &role

	return &e, nil
}

func (r *EmployeeRepository) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	query, args, err := employeeBaseQuery().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEmployee(r.storage.QueryRow(ctx, query, args...))
}

// FindByEmailAndActive ищет только активных сотрудников. Неактивная
// учётная запись для входа не существует.
func (r *EmployeeRepository) FindByEmailAndActive(ctx context.Context, email string) (*entities.Employee, error) {
	query, args, err := employeeBaseQuery().
		Where(sq.Eq{"e.email": email, "e.is_active": true}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanEmployee(r.storage.QueryRow(ctx, query, args...))
}

func (r *EmployeeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки email сотрудника: %w", err)
	}
	return exists, nil
}

func (r *EmployeeRepository) GetEmployees(ctx context.Context) ([]entities.Employee, error) {
	query, args, err := employeeBaseQuery().OrderBy("e.last_name ASC, e.first_name ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка сотрудников: %w", err)
	}
	defer rows.Close()

	employees := make([]entities.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee entities.Employee) (uint64, error) {
	query := `
		INSERT INTO employees
			(role_id, branch_id, first_name, last_name, middle_name, email, phone, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		employee.RoleID, employee.BranchID, employee.FirstName, employee.LastName,
		employee.MiddleName, employee.Email, employee.Phone, employee.PasswordHash,
		employee.IsActive,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания сотрудника: %w", err)
	}
	return newID, nil
}

func (r *EmployeeRepository) SetActive(ctx context.Context, id uint64, isActive bool) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE employees SET is_active = $1 WHERE id = $2`, isActive, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка смены активности сотрудника: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
