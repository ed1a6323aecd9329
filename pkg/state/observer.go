package state

// Dimension identifies what kind of loading a LoadingContext describes.
type Dimension string

const (
	DimensionLocale  Dimension = "locale"
	DimensionSection Dimension = "section"
	DimensionModule  Dimension = "module"
)

// LoadingContext identifies one in-flight load. Name is the section or
// module name and is empty for locale loads.
type LoadingContext struct {
	Dimension Dimension
	Locale    string
	Name      string
}

func (lc LoadingContext) key() string {
	return lc.Locale + ":" + lc.Name
}

// Observer receives state change notifications. Implementations must not
// block; notifications run synchronously on the mutating goroutine.
type Observer interface {
	OnLocaleChange(oldLocale, newLocale string)
	OnLoadingStart(lc LoadingContext)
	OnLoadingComplete(lc LoadingContext, ok bool)
	OnError(err error)
}

// Funcs adapts plain functions to the Observer interface. Nil fields are
// simply skipped, so callers subscribe only to the events they care about.
type Funcs struct {
	LocaleChange    func(oldLocale, newLocale string)
	LoadingStart    func(lc LoadingContext)
	LoadingComplete func(lc LoadingContext, ok bool)
	Error           func(err error)
}

func (f Funcs) OnLocaleChange(oldLocale, newLocale string) {
	if f.LocaleChange != nil {
		f.LocaleChange(oldLocale, newLocale)
	}
}

func (f Funcs) OnLoadingStart(lc LoadingContext) {
	if f.LoadingStart != nil {
		f.LoadingStart(lc)
	}
}

func (f Funcs) OnLoadingComplete(lc LoadingContext, ok bool) {
	if f.LoadingComplete != nil {
		f.LoadingComplete(lc, ok)
	}
}

func (f Funcs) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}
