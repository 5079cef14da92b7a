package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/config"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/store"
	"github.com/ctdp-app/ctdp/tracker"
)

const user = "user-1"

var now = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T) store.DB {
	t.Helper()

	ctx := context.Background()

	db, err := store.NewBoltDB(filepath.Join(t.TempDir(), "ctdp.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	svc := tracker.New(db, tracker.WithClock(clockwork.NewFakeClockAt(now)))

	active, err := svc.CreateTodo(ctx, user, "Write report")
	require.NoError(t, err)

	sub, err := svc.AddSubtask(ctx, user, active.ID, "outline")
	require.NoError(t, err)

	done, err := svc.CreateTodo(ctx, user, "Email")
	require.NoError(t, err)

	doneSub, err := svc.AddSubtask(ctx, user, done.ID, "reply")
	require.NoError(t, err)

	yes := true
	_, err = svc.UpdateSubtask(ctx, user, doneSub.ID, models.SubtaskUpdate{Done: &yes})
	require.NoError(t, err)

	_, err = svc.AutoArchive(ctx, user)
	require.NoError(t, err)

	_, err = svc.RecordSession(ctx, user, models.SessionRequest{
		TodoTitle:    "Write report (outline)",
		SubtaskIDs:   []string{sub.ID},
		FocusSeconds: 600,
	})
	require.NoError(t, err)

	return db
}

func TestCollect(t *testing.T) {
	db := seed(t)

	e, err := Collect(context.Background(), db, user, now)
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, e.Version)
	assert.Equal(t, user, e.UserID)
	assert.Equal(t, now, e.ExportedAt)

	require.Len(t, e.Todos, 1)
	assert.Equal(t, "Write report", e.Todos[0].Title)
	assert.Equal(t, 600, e.Todos[0].Subtasks[0].TotalSeconds)

	require.Len(t, e.Archived, 1)
	assert.Equal(t, "Email", e.Archived[0].Title)

	require.Len(t, e.Sessions, 1)
	assert.Equal(t, 600, e.Sessions[0].FocusSeconds)

	require.Len(t, e.SubtaskSessions, 1)
	assert.Equal(t, e.Sessions[0].ID, e.SubtaskSessions[0].SessionID)
}

func TestCollectOtherUserIsEmpty(t *testing.T) {
	db := seed(t)

	e, err := Collect(context.Background(), db, "someone-else", now)
	require.NoError(t, err)

	assert.Empty(t, e.Todos)
	assert.Empty(t, e.Archived)
	assert.Empty(t, e.Sessions)
	assert.Empty(t, e.SubtaskSessions)
}

func TestCollectRequiresUser(t *testing.T) {
	_, err := Collect(context.Background(), nil, "  ", now)
	assert.ErrorIs(t, err, tracker.ErrUnauthorized)
}

func TestWrite(t *testing.T) {
	db := seed(t)

	e, err := Collect(context.Background(), db, user, now)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, e))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, FormatVersion, decoded["version"])
	assert.Equal(t, user, decoded["userId"])
	assert.Len(t, decoded["todos"], 1)
	assert.Len(t, decoded["archived"], 1)
}

func TestFileNameAndKey(t *testing.T) {
	name := FileName(now.In(time.FixedZone("WAT", 3600)))
	assert.Equal(t, "ctdp-backup-20250310T090000Z.json", name)

	cfg := config.S3Config{Prefix: "backups"}
	assert.Equal(t, "backups/user-1/"+name, Key(cfg, user, name))

	assert.Equal(t, "user-1/"+name, Key(config.S3Config{}, user, name))
}

// stubAWS swaps the AWS entry points for the duration of the test.
func stubAWS(
	t *testing.T,
	loadErr, putErr error,
) (*aws.Config, *s3.Options, *s3.PutObjectInput) {
	t.Helper()

	origLoad, origNew, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, putObject

	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject = origLoad, origNew, origPut
	})

	var (
		gotCfg  aws.Config
		gotOpts s3.Options
		gotIn   s3.PutObjectInput
	)

	loadDefaultAWSConfig = func(
		ctx context.Context,
		optFns ...func(*awsconfig.LoadOptions) error,
	) (aws.Config, error) {
		if loadErr != nil {
			return aws.Config{}, loadErr
		}

		var lo awsconfig.LoadOptions

		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				return aws.Config{}, err
			}
		}

		gotCfg = aws.Config{Region: lo.Region, Credentials: lo.Credentials}

		return gotCfg, nil
	}

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&gotOpts)
		}

		return &s3.Client{}
	}

	putObject = func(ctx context.Context, c *s3.Client, in *s3.PutObjectInput) error {
		gotIn = *in
		return putErr
	}

	return &gotCfg, &gotOpts, &gotIn
}

func TestUpload(t *testing.T) {
	cfg := config.S3Config{
		Bucket:    "ctdp",
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	}

	awsCfg, opts, in := stubAWS(t, nil, nil)

	require.NoError(t, Upload(context.Background(), cfg, "u/x.json", []byte(`{}`)))

	assert.Equal(t, "eu-west-1", awsCfg.Region)
	require.NotNil(t, awsCfg.Credentials)

	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	assert.Equal(t, "ctdp", aws.ToString(in.Bucket))
	assert.Equal(t, "u/x.json", aws.ToString(in.Key))
	assert.Equal(t, "application/json", aws.ToString(in.ContentType))

	body, err := io.ReadAll(in.Body)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(body))
}

func TestUploadDefaultChain(t *testing.T) {
	awsCfg, opts, _ := stubAWS(t, nil, nil)

	cfg := config.S3Config{Bucket: "ctdp", Region: "us-east-1"}

	require.NoError(t, Upload(context.Background(), cfg, "k", nil))

	assert.Nil(t, awsCfg.Credentials)
	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestUploadErrors(t *testing.T) {
	cases := []struct {
		loadErr error
		putErr  error
		name    string
	}{
		{name: "config", loadErr: errors.New("no region")},
		{name: "put", putErr: errors.New("access denied")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stubAWS(t, tc.loadErr, tc.putErr)

			err := Upload(context.Background(), config.S3Config{Bucket: "ctdp"}, "k", nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, errUpload)
			assert.Equal(t, apperr.Persistence, apperr.KindOf(err))
			assert.Contains(t, err.Error(), "s3://ctdp")
		})
	}
}
