// Package backup periodically dumps the aid tables as SQL and uploads the
// dump to an S3-compatible bucket (Cloudflare R2 in production).
package backup

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	appconfig "aid-backend/internal/config"
	"aid-backend/internal/timeutil"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables included in every backup, dumped in FK dependency order so the dump
// restores cleanly.
var backupTables = []string{
	"users",
	"organizations",
	"families",
	"beneficiaries",
	"package_templates",
	"couriers",
	"distribution_requests",
	"tasks",
	"alerts",
	"admin_action_logs",
}

type Scheduler struct {
	db     *pgxpool.Pool
	cfg    *appconfig.Config
	client *s3.Client
}

func NewScheduler(db *pgxpool.Pool, cfg *appconfig.Config) (*Scheduler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Backup.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Backup.AccessKey, cfg.Backup.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("backup aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &cfg.Backup.Endpoint
		o.UsePathStyle = true
	})
	return &Scheduler{db: db, cfg: cfg, client: client}, nil
}

// Start runs backups on the configured interval until ctx is cancelled.
// Blocks; run on its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	interval := time.Duration(s.cfg.Backup.IntervalMinutes) * time.Minute
	log.Printf("[Backup] scheduler started, interval %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				log.Printf("[Backup] failed: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[Backup] scheduler stopped")
			return
		}
	}
}

// RunOnce dumps all tables and uploads a single timestamped SQL file
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var dump bytes.Buffer
	fmt.Fprintf(&dump, "-- aid-backend backup %s\n\n", timeutil.Now().Format(timeutil.DateTimeLayout))

	for _, table := range backupTables {
		if err := s.dumpTable(ctx, &dump, table); err != nil {
			return fmt.Errorf("dump %s: %w", table, err)
		}
	}

	key := fmt.Sprintf("backups/aid-backend-%s.sql", timeutil.Now().Format("2006-01-02T15-04-05"))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.cfg.Backup.Bucket,
		Key:    &key,
		Body:   bytes.NewReader(dump.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[Backup] uploaded %s (%d bytes)", key, dump.Len())
	return nil
}

// dumpTable writes INSERT statements for every row of the table
func (s *Scheduler) dumpTable(ctx context.Context, dump *bytes.Buffer, table string) error {
	rows, err := s.db.Query(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return err
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	columns := make([]string, len(descs))
	for i, d := range descs {
		columns[i] = d.Name
	}

	fmt.Fprintf(dump, "-- %s\n", table)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		fmt.Fprintf(dump, "INSERT INTO %s (%s) VALUES (%s);\n",
			table, strings.Join(columns, ", "), formatValues(values))
	}
	dump.WriteString("\n")
	return rows.Err()
}

func formatValues(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case time.Time:
		return "'" + val.Format(time.RFC3339Nano) + "'"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []byte:
		return "'" + strings.ReplaceAll(string(val), "'", "''") + "'"
	default:
		s := fmt.Sprintf("%v", val)
		// arrays and composite values still need quoting
		if strings.ContainsAny(s, "[]{} ,") {
			return "'" + strings.ReplaceAll(s, "'", "''") + "'"
		}
		return s
	}
}
