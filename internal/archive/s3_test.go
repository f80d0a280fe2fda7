package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-admin/internal/timeutil"
)

func Test_Key_PartitionsByMonth(t *testing.T) {
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, timeutil.Location)

	assert.Equal(t, "reports/2024/03/borrows.pdf", Key("/reports/", "borrows.pdf", at))
	assert.Equal(t, "2024/03/borrows.csv", Key("", "borrows.csv", at))
}
