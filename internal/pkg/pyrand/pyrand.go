// Package pyrand 重現 CPython random 模組的 Mersenne Twister (MT19937)，
// 以字串為種子時產生的數值與 Python 3 的 random.seed(s) 之後
// random.random() 或 random.uniform(a, b) 完全相同
package pyrand

import (
	"crypto/sha512"
	"math/big"
)

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Source 32 位元 Mersenne Twister，不可並行使用
type Source struct {
	mt  [n]uint32
	idx int
}

// NewFromString 依 random.seed(s) 預設 version 2 的方式播種：
// UTF-8 位元組接上其 SHA-512 摘要，整段視為一個大端序整數
func NewFromString(s string) *Source {
	b := []byte(s)
	sum := sha512.Sum512(b)
	b = append(b, sum[:]...)
	return NewFromInt(new(big.Int).SetBytes(b))
}

// NewFromInt 依 random.seed(i) 對非負整數的方式播種
func NewFromInt(i *big.Int) *Source {
	src := &Source{}
	src.seedByArray(keyWords(i))
	return src
}

// keyWords 將 |i| 切成 32 位元字組，低位在前
func keyWords(i *big.Int) []uint32 {
	raw := new(big.Int).Abs(i).Bytes()
	if len(raw) == 0 {
		return []uint32{0}
	}
	if pad := (4 - len(raw)%4) % 4; pad > 0 {
		raw = append(make([]byte, pad), raw...)
	}
	words := make([]uint32, len(raw)/4)
	for w := range words {
		off := len(raw) - 4*(w+1)
		words[w] = uint32(raw[off])<<24 | uint32(raw[off+1])<<16 | uint32(raw[off+2])<<8 | uint32(raw[off+3])
	}
	return words
}

func (s *Source) seed(v uint32) {
	s.mt[0] = v
	for i := 1; i < n; i++ {
		prev := s.mt[i-1]
		s.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	s.idx = n
}

func (s *Source) seedByArray(key []uint32) {
	s.seed(19650218)

	i, j := 1, 0
	k := n
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
	}
	s.mt[0] = 0x80000000
}

func (s *Source) twist() {
	for kk := 0; kk < n; kk++ {
		y := (s.mt[kk] & upperMask) | (s.mt[(kk+1)%n] & lowerMask)
		v := s.mt[(kk+m)%n] ^ (y >> 1)
		if y&1 != 0 {
			v ^= matrixA
		}
		s.mt[kk] = v
	}
	s.idx = 0
}

// Uint32 下一個經 tempering 的 32 位元輸出
func (s *Source) Uint32() uint32 {
	if s.idx >= n {
		s.twist()
	}
	y := s.mt[s.idx]
	s.idx++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 回傳 [0.0, 1.0) 內 53 位元精度的浮點數，同 random.random()
func (s *Source) Float64() float64 {
	a := s.Uint32() >> 5
	b := s.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Uniform 回傳 a + (b-a)*Float64()，同 random.uniform(a, b)
func (s *Source) Uniform(a, b float64) float64 {
	return a + (b-a)*s.Float64()
}
