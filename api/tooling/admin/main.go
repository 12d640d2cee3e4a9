// This program provides operational commands for the job board:
// applying the database schema, seeding development data, generating
// signing keys and minting tokens for manual API testing.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	_ "embed"
	"encoding/pem"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus/stores/tenantdb"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/domain/userbus/stores/userdb"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/name"
	"github.com/workforcehq/jobboard/business/types/password"
	"github.com/workforcehq/jobboard/business/types/phone"
	"github.com/workforcehq/jobboard/business/types/role"
	"github.com/workforcehq/jobboard/foundation/keystore"
	"github.com/workforcehq/jobboard/foundation/logger"
)

//go:embed schema.sql
var schemaDoc string

// Config replicates the DB config structure of the service.
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"jobboard"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"foundation/zarf/keys"`
		ActiveKID  string `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string `envconfig:"AUTH_ISSUER" default:"https://workforcehq.com/auth/"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: schema, seed, keygen, gentoken, create-user")
		return nil
	}

	// keygen has no database dependency.
	if os.Args[1] == "keygen" {
		return runKeyGen(cfg, os.Args[2:])
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	userBus := userbus.NewCore(userdb.NewStore(log, db))
	tenantBus := tenantbus.NewCore(log, tenantdb.NewStore(log, db), tenantbus.ResolverConfig{})

	switch os.Args[1] {
	case "schema":
		return runSchema(ctx, db)
	case "seed":
		return runSeed(ctx, tenantBus, userBus)
	case "gentoken":
		return runGenToken(ctx, log, cfg, userBus, os.Args[2:])
	case "create-user":
		return runCreateUser(ctx, userBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runSchema(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaDoc); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	fmt.Println("\nSUCCESS: Schema applied")
	return nil
}

func runSeed(ctx context.Context, tb *tenantbus.Core, ub *userbus.Core) error {
	tenant, err := tb.Create(ctx, tenantbus.NewTenant{
		Name:     mustName("Demo Company"),
		Slug:     "demo",
		Modules:  module.MustParseSet("jobs:featured,webhooks"),
		Country:  "SN",
		Currency: "XOF",
		Locale:   "fr",
	})
	if err != nil {
		return fmt.Errorf("create demo tenant: %w", err)
	}

	seedUsers := []struct {
		tenantID uuid.UUID
		name     string
		email    string
		role     role.Role
	}{
		{uuid.Nil, "Platform Admin", "super@workforcehq.com", role.SuperAdmin},
		{tenant.ID, "Demo Admin", "admin@demo.test", role.Admin},
		{tenant.ID, "Demo Employer", "employer@demo.test", role.Employer},
		{tenant.ID, "Demo Candidate", "candidate@demo.test", role.Candidate},
	}

	pass, err := password.Parse("gophers")
	if err != nil {
		return fmt.Errorf("parse seed password: %w", err)
	}

	for _, su := range seedUsers {
		usr, err := ub.Create(ctx, userbus.NewUser{
			TenantID: su.tenantID,
			Name:     mustName(su.name),
			Email:    mail.Address{Address: su.email},
			Phone:    phone.Null{},
			Role:     su.role,
			Password: pass,
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", su.email, err)
		}
		fmt.Printf("user: %s  role: %s  id: %s\n", su.email, su.role, usr.ID)
	}

	fmt.Printf("\nSUCCESS: Seeded tenant %q (%s), password for all users: gophers\n", tenant.Slug, tenant.ID)
	return nil
}

func runKeyGen(cfg Config, args []string) error {
	cmd := flag.NewFlagSet("keygen", flag.ExitOnError)
	folder := cmd.String("folder", cfg.Auth.KeysFolder, "Folder to write the key into")
	kid := cmd.String("kid", cfg.Auth.ActiveKID, "Key id, used as the file name")
	cmd.Parse(args)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	if err := os.MkdirAll(*folder, 0o755); err != nil {
		return fmt.Errorf("creating keys folder: %w", err)
	}

	fileName := filepath.Join(*folder, *kid+".pem")

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	defer file.Close()

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(file, &block); err != nil {
		return fmt.Errorf("encoding key: %w", err)
	}

	fmt.Printf("\nSUCCESS: Private key written to %s\n", fileName)
	return nil
}

func runGenToken(ctx context.Context, log *logger.Logger, cfg Config, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("gentoken", flag.ExitOnError)
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	cmd.Parse(args)

	if *userIDStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required user-id")
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	usr, err := ub.QueryByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	a := auth.New(auth.Config{
		Log:       log,
		UserBus:   ub,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
		ActiveKID: cfg.Auth.ActiveKID,
	})

	token, err := a.GenerateToken(usr.TenantID, usr.ID, usr.Role)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Printf("\nSUCCESS: Token for %s (%s)\n%s\n", usr.Email.Address, usr.Role, token)
	return nil
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	tenantIDStr := cmd.String("tenant-id", "", "Tenant UUID, empty for a super admin")
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	roleStr := cmd.String("role", role.Candidate.String(), "User role (candidate, employer, admin, super_admin)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	tenantID := uuid.Nil
	if *tenantIDStr != "" {
		var err error
		if tenantID, err = uuid.Parse(*tenantIDStr); err != nil {
			return fmt.Errorf("invalid tenant uuid: %w", err)
		}
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	usr, err := ub.Create(ctx, userbus.NewUser{
		TenantID: tenantID,
		Name:     n,
		Email:    *addr,
		Phone:    phone.Null{},
		Role:     r,
		Password: p,
	})
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\nRole: %s\n", usr.ID, usr.Email.Address, usr.Role)
	return nil
}

func mustName(value string) name.Name {
	n, err := name.Parse(value)
	if err != nil {
		panic(err)
	}
	return n
}
