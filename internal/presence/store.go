package presence

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"

	fieldsPerRow = 4
)

// Loader はソースを読み、毎回新しい RecordStore を返す
type Loader interface {
	Load(ctx context.Context) (*RecordStore, error)
}

// CSV ファイル（user_id,YYYY-MM-DD,HH:MM:SS,HH:MM:SS）から読む
type CSVLoader struct {
	path     string
	encoding string
	log      *zap.Logger
}

func NewCSVLoader(path, encoding string, log *zap.Logger) *CSVLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSVLoader{path: path, encoding: encoding, log: log}
}

func (l *CSVLoader) Load(ctx context.Context) (*RecordStore, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open presence source: %w", err)
	}
	defer f.Close()

	r, err := decodeReader(f, l.encoding)
	if err != nil {
		return nil, err
	}
	store, err := ParseCSV(r, l.log)
	if err != nil {
		return nil, err
	}
	l.log.Info("presence source loaded",
		zap.String("path", l.path),
		zap.Int("users", store.Len()),
	)
	return store, nil
}

// ParseCSV は1行ずつ読む。4列でない行は黙って飛ばし、4列でもパースできない行
// （閉じていない引用符を含む）はログに残して飛ばす。行単位の失敗で全体をエラーにはしない
func ParseCSV(r io.Reader, log *zap.Logger) (*RecordStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sc := bufio.NewScanner(r)
	store := NewRecordStore()
	line := 0
	for sc.Scan() {
		line++
		fields, err := splitLine(sc.Text())
		if err != nil {
			log.Debug("problem with line", zap.Int("line", line), zap.Error(err))
			continue
		}
		if len(fields) != fieldsPerRow {
			// ヘッダ・フッタ・空行
			continue
		}

		row := presenceRow{UserID: fields[0], Date: fields[1], Start: fields[2], End: fields[3]}
		rec, err := row.toRecord()
		if err != nil {
			log.Debug("problem with line", zap.Int("line", line), zap.Error(err))
			continue
		}
		store.add(rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read presence source: %w", err)
	}
	return store, nil
}

// 行ごとに csv.Reader を作るので、壊れた引用符の影響はその行だけで終わる
func splitLine(text string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return fields, err
}

// 1項目でも失敗したら行ごと捨てる（部分的には登録しない）
func (r presenceRow) toRecord() (AttendanceRecord, error) {
	userID, err := strconv.Atoi(strings.TrimSpace(r.UserID))
	if err != nil {
		return AttendanceRecord{}, fmt.Errorf("user_id: %w", err)
	}
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(r.Date), time.UTC)
	if err != nil {
		return AttendanceRecord{}, fmt.Errorf("date: %w", err)
	}
	start, err := ParseClockTime(strings.TrimSpace(r.Start))
	if err != nil {
		return AttendanceRecord{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseClockTime(strings.TrimSpace(r.End))
	if err != nil {
		return AttendanceRecord{}, fmt.Errorf("end: %w", err)
	}
	return AttendanceRecord{UserID: userID, Date: date, Start: start, End: end}, nil
}

func decodeReader(r io.Reader, enc string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", EncodingUTF8, "utf8":
		// BOM 付きでも先頭行が壊れないように
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingShiftJIS, "sjis", "cp932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported source encoding: %q", enc)
	}
}
