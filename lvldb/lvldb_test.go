// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package lvldb_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ChainSafe/bridge-settlement/lvldb"
)

type LVLDBTestSuite struct {
	suite.Suite
}

func TestRunLVLDBTestSuite(t *testing.T) {
	suite.Run(t, new(LVLDBTestSuite))
}

func (s *LVLDBTestSuite) Test_SetAndGet() {
	db, err := lvldb.NewLvlDB(s.T().TempDir())
	s.Nil(err)
	defer db.Close()

	s.Nil(db.SetByKey([]byte("key"), []byte("value")))

	v, err := db.GetByKey([]byte("key"))
	s.Nil(err)
	s.Equal([]byte("value"), v)
}

func (s *LVLDBTestSuite) Test_ValuesSurviveReopen() {
	path := s.T().TempDir()

	db, err := lvldb.NewLvlDB(path)
	s.Nil(err)
	s.Nil(db.SetByKey([]byte("key"), []byte("value")))
	s.Nil(db.Close())

	db, err = lvldb.NewLvlDB(path)
	s.Nil(err)
	defer db.Close()

	v, err := db.GetByKey([]byte("key"))
	s.Nil(err)
	s.Equal([]byte("value"), v)
}

func (s *LVLDBTestSuite) Test_SecondOpenOnLockedStoreFails() {
	path := s.T().TempDir()

	db, err := lvldb.NewLvlDB(path)
	s.Nil(err)
	defer db.Close()

	_, err = lvldb.NewLvlDB(path)
	s.NotNil(err)
}
