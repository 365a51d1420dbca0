package naver

import (
	"testing"
	"time"
)

func TestParseChartResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{
			name: "quasi JSON with single quotes",
			body: `[['날짜', '시가', '고가', '저가', '종가', '거래량', '외국인소진율'],
["20240115", 72300, 73000, 72000, 72500, 1000000, 52.1],
["20240116", 72500, 73500, 72300, 73000, 1200000, 52.0]]`,
			want: 2,
		},
		{
			name: "header only",
			body: `[['날짜', '시가', '고가', '저가', '종가', '거래량', '외국인소진율']]`,
			want: 0,
		},
		{
			name: "short rows skipped",
			body: `[['날짜', '시가'], ["20240115", 72300]]`,
			want: 0,
		},
		{
			name: "regex fallback on trailing garbage",
			body: `[['날짜', '시가', '고가', '저가', '종가', '거래량', '외국인소진율'],
["20240115", 72300, 73000, 72000, 72500, 1000000, 52.1],`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closes, err := parseChartResponse(tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseChartResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(closes) != tt.want {
				t.Errorf("parseChartResponse() got %d closes, want %d", len(closes), tt.want)
			}
		})
	}
}

func TestParseChartResponse_Values(t *testing.T) {
	body := `[['날짜', '시가', '고가', '저가', '종가', '거래량', '외국인소진율'],
["20240115", 72300, 73000, 72000, 72500, 1000000, 52.1]]`

	closes, err := parseChartResponse(body)
	if err != nil {
		t.Fatalf("parseChartResponse() error = %v", err)
	}
	if len(closes) != 1 {
		t.Fatalf("got %d closes, want 1", len(closes))
	}

	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !closes[0].TradeDate.Equal(want) {
		t.Errorf("TradeDate = %v, want %v", closes[0].TradeDate, want)
	}
	if closes[0].Close != 72500 {
		t.Errorf("Close = %v, want 72500", closes[0].Close)
	}
}

func TestParseChartDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"20240115", "2024-01-15", false},
		{`"20240115"`, "2024-01-15", false},
		{"2024-01-15", "2024-01-15", false},
		{"2024011", "", true},
		{"abcdefgh", "", true},
	}
	for _, tt := range tests {
		got, err := parseChartDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseChartDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.Format("2006-01-02") != tt.want {
			t.Errorf("parseChartDate(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
	}{
		{72500.0, 72500},
		{int(100), 100},
		{int64(200), 200},
		{"72500", 72500},
		{"not a number", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := toFloat64(tt.in); got != tt.want {
			t.Errorf("toFloat64(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
