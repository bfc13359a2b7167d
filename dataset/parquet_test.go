package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slcsp/rates"
)

func TestConvertPlansToParquet(t *testing.T) {
	csvPath := writeFile(t, "plans.csv", plansCSV)
	out := filepath.Join(t.TempDir(), "plans.parquet")

	n, err := ConvertToParquet(KindPlans, csvPath, out)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	fromCSV, err := ReadPlans(csvPath)
	require.NoError(t, err)
	fromParquet, err := ReadPlans(out)
	require.NoError(t, err)

	require.Len(t, fromParquet, len(fromCSV))
	for i := range fromCSV {
		assert.Equal(t, fromCSV[i].MetalLevel, fromParquet[i].MetalLevel, "row %d metal level", i)
		assert.Equal(t, fromCSV[i].RateArea, fromParquet[i].RateArea, "row %d rate area", i)
		assert.True(t, fromCSV[i].Rate.Equal(fromParquet[i].Rate),
			"row %d rate = %s, want %s", i, fromParquet[i].Rate, fromCSV[i].Rate)
	}
}

func TestConvertZipsToParquet(t *testing.T) {
	csvPath := writeFile(t, "zips.csv", "zipcode,rate_area\n00601,1\n00601,4\n07001,7\n")
	out := filepath.Join(t.TempDir(), "zips.parquet")

	n, err := ConvertToParquet(KindZips, csvPath, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	zips, err := ReadZips(out)
	require.NoError(t, err)
	assert.Equal(t, []rates.ZipRecord{
		{Zipcode: "00601", RateArea: 1},
		{Zipcode: "00601", RateArea: 4},
		{Zipcode: "07001", RateArea: 7},
	}, zips)
}

func TestConvertRejectsBadCSV(t *testing.T) {
	csvPath := writeFile(t, "plans.csv", "metal_level,rate,rate_area\nSilver,x,1\n")

	_, err := ConvertToParquet(KindPlans, csvPath, filepath.Join(t.TempDir(), "plans.parquet"))
	var rowErr *RowError
	assert.True(t, errors.As(err, &rowErr))
}

func TestConvertUnknownKind(t *testing.T) {
	_, err := ConvertToParquet(Kind("rates"), "in.csv", "out.parquet")
	assert.Error(t, err)
}

func TestReadPlansParquetRejectsBadRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.parquet")
	_, err := writeParquet(path, []PlanRow{
		{MetalLevel: "Silver", Rate: "10.00", RateArea: 1},
		{MetalLevel: "Silver", Rate: "ten", RateArea: 1},
	})
	require.NoError(t, err)

	_, err = ReadPlans(path)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, int64(2), rowErr.Row)
}

func TestParquetWriterCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zips.parquet")
	w, err := NewParquetWriter[ZipRow](path)
	require.NoError(t, err)

	_, err = w.Write([]ZipRow{{Zipcode: "36749", RateArea: 11}})
	require.NoError(t, err)
	_, err = w.Write([]ZipRow{{Zipcode: "36750", RateArea: 11}, {Zipcode: "36751", RateArea: 12}})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, 3, w.Count())
	rows, err := readParquet[ZipRow](path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
