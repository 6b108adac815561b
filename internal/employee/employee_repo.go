package employee

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	Save(ctx context.Context, empl *Employee) error
	Search(ctx context.Context, search string) ([]Employee, error)
	FindByOnboardingStatus(ctx context.Context, status OnboardingStatus) ([]Employee, error)
	FindVisaTracked(ctx context.Context) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn routes statements through the caller's transaction when one is bound.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	if empl.Version == 0 {
		empl.Version = 1
	}
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// Save writes the whole aggregate guarded by its version. A stale version
// matches zero rows and surfaces as ErrStaleVersion.
func (r *repository) Save(ctx context.Context, empl *Employee) error {
	expected := empl.Version
	empl.Version = expected + 1

	res := r.conn(ctx).
		Model(empl).
		Where("version = ?", expected).
		Select("*").
		Omit("id", "created_at").
		Updates(empl)
	if res.Error != nil {
		empl.Version = expected
		return res.Error
	}
	if res.RowsAffected == 0 {
		empl.Version = expected
		return ErrStaleVersion
	}
	return nil
}

const legalNameOrder = "COALESCE(profile->'personal_info'->>'last_name', onboarding_form_data->'personal_info'->>'last_name') ASC NULLS LAST, username ASC"

func (r *repository) Search(ctx context.Context, search string) ([]Employee, error) {
	var empls []Employee
	q := r.conn(ctx).Where("role = ?", RoleEmployee)

	if term := strings.TrimSpace(search); term != "" {
		like := "%" + escapeLike(term) + "%"
		q = q.Where(`username ILIKE @q
			OR profile->'personal_info'->>'first_name' ILIKE @q
			OR profile->'personal_info'->>'last_name' ILIKE @q
			OR profile->'personal_info'->>'preferred_name' ILIKE @q
			OR onboarding_form_data->'personal_info'->>'first_name' ILIKE @q
			OR onboarding_form_data->'personal_info'->>'last_name' ILIKE @q
			OR onboarding_form_data->'personal_info'->>'preferred_name' ILIKE @q`,
			sql.Named("q", like),
		)
	}

	err := q.Order(legalNameOrder).Find(&empls).Error
	return empls, err
}

// FindByOnboardingStatus lists employees in the given onboarding status; an
// empty status lists every employee.
func (r *repository) FindByOnboardingStatus(ctx context.Context, status OnboardingStatus) ([]Employee, error) {
	var empls []Employee
	q := r.conn(ctx).Where("role = ?", RoleEmployee)
	if status != "" {
		q = q.Where("onboarding_status = ?", status)
	}
	err := q.Order("onboarding_submitted_at DESC NULLS LAST").Find(&empls).Error
	return empls, err
}

// FindVisaTracked returns employees on the OPT pipeline plus anyone holding an
// approved visa document, so a changed work authorization does not hide history.
func (r *repository) FindVisaTracked(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Where("role = ?", RoleEmployee).
		Where(`visa_opt_required = TRUE OR EXISTS (
			SELECT 1 FROM jsonb_array_elements(COALESCE(documents, '[]'::jsonb)) d
			WHERE d->>'category' = ? AND d->>'status' = ?
		)`, CategoryVisa, DocumentApproved).
		Order(legalNameOrder).
		Find(&empls).Error
	return empls, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
