package biquad

// Bank is a set of Sections, one per channel, that share coefficients but
// keep separate delay lines.
type Bank struct {
	coeffs   Coefficients
	sections []Section
}

// NewBank returns a Bank with numChannels zeroed sections.
func NewBank(numChannels int) *Bank {
	if numChannels < 0 {
		numChannels = 0
	}

	return &Bank{sections: make([]Section, numChannels)}
}

// Channels returns the number of sections in the bank.
func (b *Bank) Channels() int {
	return len(b.sections)
}

// SetCoefficients installs c on every section. Delay state is kept, so a
// coefficient change between blocks stays continuous.
func (b *Bank) SetCoefficients(c Coefficients) {
	b.coeffs = c
	for i := range b.sections {
		b.sections[i].Coefficients = c
	}
}

// Coefficients returns the coefficient set shared by the bank.
func (b *Bank) Coefficients() Coefficients {
	return b.coeffs
}

// Section returns the section for channel ch.
func (b *Bank) Section(ch int) *Section {
	return &b.sections[ch]
}

// ProcessChannel filters buf in place with the section of channel ch.
func (b *Bank) ProcessChannel(ch int, buf []float32) {
	b.sections[ch].ProcessBlock(buf)
}

// Reset clears every delay line.
func (b *Bank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}
