package user

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"race-admin/core/dao"
	"race-admin/core/metrics"
	"race-admin/core/models"
	"race-admin/core/password"
	"race-admin/core/policy"
	"race-admin/core/reconcile"
	"race-admin/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrBadPassword  = errors.New("wrong password")
	ErrForbidden    = errors.New("permission denied")
	ErrSelfDelete   = errors.New("cannot delete yourself")
	ErrInvalidInput = errors.New("invalid input")
)

// AccountPlan is the reconciliation of a batch of submitted accounts.
type AccountPlan = reconcile.Plan[map[string]any, map[string]any]

// ListQuery selects a page of accounts.
type ListQuery struct {
	// Offset is the 1-based page number.
	Offset int
	Limit  int
	// Name and Class are partial matches on the kind's name and class columns.
	Name  string
	Class string
	// Filters are exact matches; unknown columns are ignored.
	Filters map[string]string
}

// SessionRevoker drops the login sessions of one account.
type SessionRevoker interface {
	DeleteAccount(ctx context.Context, kind models.Kind, account string) error
}

// Service handles account persistence.
type Service struct {
	logger          *zap.Logger
	db              *gorm.DB
	hasher          password.Hasher
	defaultPassword string
	sessions        SessionRevoker
}

// NewService creates a new user service.
func NewService(logger *zap.Logger, db *gorm.DB, hasher password.Hasher, defaultPassword string) *Service {
	return &Service{
		logger:          logger,
		db:              db,
		hasher:          hasher,
		defaultPassword: defaultPassword,
	}
}

// CheckUsers splits users into stored accounts and accounts to insert. Only
// students and teachers can be checked. Nothing is written.
func (s *Service) CheckUsers(ctx context.Context, kind models.Kind, users []map[string]any) (*AccountPlan, error) {
	if !kind.Importable() {
		return nil, ErrInvalidInput
	}
	return reconcile.Reconcile[map[string]any, map[string]any](ctx, accountAdapter{kind: kind, db: s.db}, users)
}

// Add inserts a single account.
func (s *Service) Add(ctx context.Context, kind models.Kind, data map[string]any) error {
	plan, err := s.CheckUsers(ctx, kind, []map[string]any{data})
	if err != nil {
		return err
	}
	if len(plan.Invalid) > 0 {
		return ErrInvalidInput
	}
	if len(plan.Existing) > 0 {
		metrics.ImportConflicts.WithLabelValues(string(kind)).Inc()
		return ErrUserExists
	}

	if err := s.hashPasswords(plan.New); err != nil {
		return err
	}
	if err := insertAccounts(ctx, s.db, kind, plan.New); err != nil {
		return translate(err)
	}
	metrics.AccountsImported.WithLabelValues(string(kind)).Add(float64(len(plan.New)))
	return nil
}

// Import inserts the new accounts of a batch in one transaction and returns the
// accounts that already existed together with the number inserted.
func (s *Service) Import(ctx context.Context, kind models.Kind, data []map[string]any) ([]map[string]any, int, error) {
	if len(data) == 0 {
		return nil, 0, ErrInvalidInput
	}
	plan, err := s.CheckUsers(ctx, kind, data)
	if err != nil {
		return nil, 0, err
	}
	if len(plan.Invalid) > 0 {
		return nil, 0, ErrInvalidInput
	}

	if err := s.hashPasswords(plan.New); err != nil {
		return nil, 0, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertAccounts(ctx, tx, kind, plan.New)
	})
	if err != nil {
		return nil, 0, translate(err)
	}

	summary := plan.Summary()
	metrics.AccountsImported.WithLabelValues(string(kind)).Add(float64(summary.New))
	metrics.ImportConflicts.WithLabelValues(string(kind)).Add(float64(summary.Existing))
	s.logger.Info("Accounts imported",
		zap.String("kind", string(kind)),
		zap.Int("inserted", summary.New),
		zap.Int("existing", summary.Existing),
		zap.Int("duplicates", summary.Duplicates))

	return plan.Existing, summary.New, nil
}

// Delete removes accounts by primary key. The caller cannot delete itself.
func (s *Service) Delete(ctx context.Context, caller policy.Principal, kind models.Kind, ids []string) (int64, error) {
	if deletesSelf(caller, kind, ids) {
		return 0, ErrSelfDelete
	}
	return deleteAccounts(ctx, s.db, kind, ids)
}

func deletesSelf(caller policy.Principal, kind models.Kind, ids []string) bool {
	return caller.Identity == kind && slices.Contains(ids, caller.Account)
}

// List returns one page of accounts, newest first, and the number of matches.
// The returned value is a pointer to a slice of the kind's model.
func (s *Service) List(ctx context.Context, kind models.Kind, q ListQuery) (any, int64, error) {
	var count int64
	if err := s.filter(ctx, kind, q).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s accounts: %w", kind, err)
	}

	query := s.filter(ctx, kind, q).Omit(models.ColPassword).Order(models.ColCreateTime + " DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
		if skip := q.Limit * (q.Offset - 1); skip > 0 {
			query = query.Offset(skip)
		}
	}

	rows := kind.NewList()
	if err := query.Find(rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s accounts: %w", kind, err)
	}
	return rows, count, nil
}

func (s *Service) filter(ctx context.Context, kind models.Kind, q ListQuery) *gorm.DB {
	query := s.db.WithContext(ctx).Model(kind.Model())

	allowed := append(kind.Columns(), models.ColRoleID)
	for col, val := range q.Filters {
		if slices.Contains(allowed, col) {
			query = query.Where(col+" = ?", val)
		}
	}
	if col := kind.NameColumn(); col != "" && q.Name != "" {
		query = query.Where(col+" LIKE ?", "%"+q.Name+"%")
	}
	if col := kind.ClassColumn(); col != "" && q.Class != "" {
		query = query.Where(col+" LIKE ?", "%"+q.Class+"%")
	}
	return query
}

// GetUser returns the caller's profile merged with its session identity.
// Password and timestamps are left out.
func (s *Service) GetUser(ctx context.Context, caller policy.Principal) (map[string]any, error) {
	kind := caller.Identity
	var rows []map[string]any
	err := s.db.WithContext(ctx).
		Model(kind.Model()).
		Select(append(kind.Columns(), models.ColRoleID)).
		Where(kind.PrimaryKey()+" = ?", caller.Account).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", kind, caller.Account, err)
	}

	profile := map[string]any{}
	if len(rows) > 0 {
		profile = rows[0]
	}
	profile["account"] = caller.Account
	profile["identity"] = string(caller.Identity)
	profile[models.ColRoleID] = caller.RoleID
	return profile, nil
}

// ChangePassword replaces the password of account after checking oldVal.
func (s *Service) ChangePassword(ctx context.Context, kind models.Kind, account, oldVal, newVal string) error {
	cred, err := s.credential(ctx, kind, account)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(oldVal, cred.Password) {
		return ErrBadPassword
	}
	return s.setPassword(ctx, kind, account, newVal)
}

// Reset sets the password of account to the configured default.
func (s *Service) Reset(ctx context.Context, kind models.Kind, account string) error {
	return s.setPassword(ctx, kind, account, s.defaultPassword)
}

// Update applies patch to account. The primary key and password are never
// written; role_id only when canManage is set. Callers other than the account
// itself need canManage.
func (s *Service) Update(ctx context.Context, caller policy.Principal, kind models.Kind, account string, patch map[string]any, canManage bool) (int64, error) {
	if !caller.Is(kind, account) && !canManage {
		return 0, ErrForbidden
	}

	values := dao.Whitelist(patch, kind.Columns())
	delete(values, kind.PrimaryKey())
	_, roleChanged := patch[models.ColRoleID]
	roleChanged = roleChanged && canManage
	if roleChanged {
		values[models.ColRoleID] = utils.ToInt(patch[models.ColRoleID])
	}

	n, err := updateAccounts(ctx, s.db, kind, map[string]any{kind.PrimaryKey(): account}, values)
	if err != nil || n == 0 || !roleChanged || s.sessions == nil {
		return n, err
	}

	// Sessions carry the role they were opened with.
	if err := s.sessions.DeleteAccount(ctx, kind, account); err != nil {
		return n, fmt.Errorf("revoke %s %s sessions: %w", kind, account, err)
	}
	s.logger.Info("Sessions revoked after role change", zap.String("kind", string(kind)), zap.String("account", account))
	return n, nil
}

// UseSessions makes role changes drop the account's open sessions.
func (s *Service) UseSessions(sessions SessionRevoker) {
	s.sessions = sessions
}

// Authenticate checks a secret and returns the matching principal. Unknown
// accounts and wrong secrets both yield ErrBadPassword.
func (s *Service) Authenticate(ctx context.Context, kind models.Kind, account, secret string) (policy.Principal, error) {
	cred, err := s.credential(ctx, kind, account)
	if errors.Is(err, ErrUserNotFound) {
		return policy.Principal{}, ErrBadPassword
	}
	if err != nil {
		return policy.Principal{}, err
	}
	if !s.hasher.Verify(secret, cred.Password) {
		return policy.Principal{}, ErrBadPassword
	}
	return policy.Principal{Account: account, Identity: kind, RoleID: cred.RoleID}, nil
}

// CreateAdmin inserts an administrator account.
func (s *Service) CreateAdmin(ctx context.Context, account, name, secret string, roleID int) error {
	if account == "" || secret == "" {
		return ErrInvalidInput
	}
	digest, err := s.hasher.Hash(secret)
	if err != nil {
		return err
	}
	admin := &models.Admin{AID: account, AName: name, Password: digest, RoleID: roleID}
	if err := dao.Create(ctx, s.db, admin); err != nil {
		return translate(err)
	}
	return nil
}

type credential struct {
	Password string `gorm:"column:password"`
	RoleID   int    `gorm:"column:role_id"`
}

func (s *Service) credential(ctx context.Context, kind models.Kind, account string) (*credential, error) {
	var creds []credential
	err := s.db.WithContext(ctx).
		Model(kind.Model()).
		Select([]string{models.ColPassword, models.ColRoleID}).
		Where(kind.PrimaryKey()+" = ?", account).
		Limit(1).
		Find(&creds).Error
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", kind, account, err)
	}
	if len(creds) == 0 {
		return nil, ErrUserNotFound
	}
	return &creds[0], nil
}

func (s *Service) setPassword(ctx context.Context, kind models.Kind, account, secret string) error {
	digest, err := s.hasher.Hash(secret)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Model(kind.Model()).
		Where(kind.PrimaryKey()+" = ?", account).
		Update(models.ColPassword, digest).Error
	if err != nil {
		return fmt.Errorf("set %s %s password: %w", kind, account, err)
	}
	return nil
}

// hashPasswords replaces the submitted password of each row, or the default
// one, with its digest.
func (s *Service) hashPasswords(rows []map[string]any) error {
	for _, row := range rows {
		secret := utils.ToString(row[models.ColPassword])
		if secret == "" {
			secret = s.defaultPassword
		}
		digest, err := s.hasher.Hash(secret)
		if err != nil {
			return err
		}
		row[models.ColPassword] = digest
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	return err
}
