package document

import (
	"io"
	"os"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// File name suffixes of the companion files.
const (
	DataSuffix  = ".data"
	AtlasSuffix = ".templates.tif"
)

// Save writes the data file '<rootName>.data' and the atlas '<rootName>.templates.tif'.
func (d *Data) Save(rootName string) error {
	const processName = "Data.Save"
	if err := writeFile(rootName+DataSuffix, d.WriteData); err != nil {
		return errors.Wrap(err, processName, "data")
	}
	if err := writeFile(rootName+AtlasSuffix, d.WriteAtlas); err != nil {
		return errors.Wrap(err, processName, "atlas")
	}
	common.Log.Info("[%s] saved %d classes of %d components into '%s'", processName, d.NumClasses, len(d.Records), rootName)
	return nil
}

// Load reads the Data with its atlas saved with the 'rootName'.
func Load(rootName string) (*Data, error) {
	const processName = "Load"
	f, err := os.Open(rootName + DataSuffix)
	if err != nil {
		return nil, errors.Wrap(err, processName, "data")
	}
	defer f.Close()

	d, err := ReadData(f)
	if err != nil {
		return nil, errors.Wrap(err, processName, "data")
	}

	af, err := os.Open(rootName + AtlasSuffix)
	if err != nil {
		return nil, errors.Wrap(err, processName, "atlas")
	}
	defer af.Close()

	if err = d.ReadAtlas(af); err != nil {
		return nil, errors.Wrap(err, processName, "atlas")
	}
	return d, nil
}

func writeFile(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
