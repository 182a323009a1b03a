package terminal

import "testing"

func TestFitIn(t *testing.T) {
	tests := []struct {
		width, height, size, reserved int
		wantCols, wantRows            int
	}{
		{80, 24, 64, 4, 64, 20},
		{200, 100, 64, 4, 64, 64},
		{40, 30, 64, 0, 40, 30},
		{10, 3, 64, 5, 10, 1},
	}
	for _, tt := range tests {
		cols, rows := FitIn(tt.width, tt.height, tt.size, tt.reserved)
		if cols != tt.wantCols || rows != tt.wantRows {
			t.Errorf("FitIn(%d, %d, %d, %d) = %d, %d; want %d, %d",
				tt.width, tt.height, tt.size, tt.reserved, cols, rows, tt.wantCols, tt.wantRows)
		}
	}
}
