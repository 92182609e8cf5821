package zanders

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/ammoready/zanders-go/config"
)

// FTPSession is the subset of an FTP connection the catalog path uses. It
// must be released with Quit on every exit path.
type FTPSession interface {
	ChangeDir(path string) error
	Retr(name string) (io.ReadCloser, error)
	Quit() error
}

// FTPDialer opens an authenticated FTP session against the vendor drop.
type FTPDialer func(ctx context.Context, cfg config.FTPConfig, creds Credentials) (FTPSession, error)

// ftpSession adapts a jlaffaye/ftp connection to FTPSession.
type ftpSession struct {
	conn *ftp.ServerConn
}

func (s *ftpSession) ChangeDir(path string) error {
	return s.conn.ChangeDir(path)
}

func (s *ftpSession) Retr(name string) (io.ReadCloser, error) {
	resp, err := s.conn.Retr(name)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *ftpSession) Quit() error {
	return s.conn.Quit()
}

// DialFTP is the default FTPDialer, connecting to the vendor's FTP server
// with the configured host and timeout.
func DialFTP(ctx context.Context, cfg config.FTPConfig, creds Credentials) (FTPSession, error) {
	conn, err := ftp.Dial(cfg.FTPAddr(),
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("zanders: ftp dial %s: %w", cfg.FTPAddr(), err)
	}

	if err := conn.Login(creds.Username, creds.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("zanders: ftp login: %w", err)
	}

	return &ftpSession{conn: conn}, nil
}
