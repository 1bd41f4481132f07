package ptr

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func (s *pointerSuite) TestPointer() {
	p1 := String(`abc123`)
	p2 := Int32(4567)
	p3 := Int64(891011)
	p4 := Bool(true)

	s.Equal(*p1, `abc123`)
	s.Equal(*p2, int32(4567))
	s.Equal(*p3, int64(891011))
	s.Equal(*p4, true)
}

func TestReflectSuite(t *testing.T) {
	rs := new(pointerSuite)
	suite.Run(t, rs)
}
