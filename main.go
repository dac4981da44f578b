package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jessevdk/go-flags"

	"github.com/Raimguzhinov/spuquant/pngpal"
	"github.com/Raimguzhinov/spuquant/spufile"
)

type Options struct {
	Output      string `short:"o" long:"output" description:"Имя выходного файла (только для одного входного)"`
	CountFactor uint64 `short:"c" long:"count-factor" default:"50" description:"Редкие цвета занимают не более 1/N пикселей"`
	Strategy    string `long:"strategy" default:"nearest" choice:"nearest" choice:"spatial" description:"Как редкие цвета сводятся к четырём основным"`
	Metric      string `long:"metric" default:"hsv" choice:"hsv" choice:"rgba" description:"Метрика расстояния для стратегии nearest"`
	Format      string `short:"f" long:"format" default:"png" choice:"png" choice:"spu" choice:"bmp" description:"Формат выходного файла"`
	Reduce      bool   `long:"reduce" description:"Сокращать многоцветные изображения методом median cut"`
	Palette     bool   `long:"palette" description:"Вывести палитры PNG-файлов и выйти"`
	Show        bool   `short:"s" long:"show" description:"Отобразить изображения после конвертации"`
	Version     bool   `short:"v" long:"version" description:"Показать версию и выйти"`
	Help        bool   `short:"h" long:"help" description:"Показать справку с описанием алгоритма"`
}

type converted struct {
	src *ImageData
	out *spufile.Image
}

var writers = map[string]func(io.Writer, *spufile.Image) error{
	"png": func(w io.Writer, m *spufile.Image) error {
		return pngpal.Write(w, m.Indexed, m.Width, m.Palette)
	},
	"spu": spufile.Write,
	"bmp": EncodeBMP,
}

func main() {
	var opts Options

	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	args, err := parser.Parse()
	if opts.Help {
		fmt.Print(detailedHelp)
		return
	}
	if opts.Version {
		fmt.Println(version)
		return
	}
	if err != nil || len(args) == 0 {
		fmt.Print(detailedHelp)
		os.Exit(1)
	}

	if opts.Palette {
		for _, name := range args {
			if err := printPalette(os.Stdout, name); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
		}
		return
	}
	if opts.Output != "" && len(args) > 1 {
		log.Fatalf("--output допускает только один входной файл, передано %d", len(args))
	}

	q, err := newQuantizer(opts)
	if err != nil {
		log.Fatal(err)
	}
	results, err := runPipeline(args, q, func(c *converted) error {
		name := outputName(c.src.Name, opts.Output, opts.Format)
		if err := saveImage(name, opts.Format, c.out); err != nil {
			return err
		}
		log.Println("Файл успешно записан:", filepath.Join(".", name))
		return nil
	})
	if err != nil {
		log.Fatalf("Ошибка в конвейере: %v", err)
	}

	if opts.Show {
		if err := preview(results); err != nil {
			log.Fatal(err)
		}
	}
}

// Конвейер: загрузка -> квантование -> запись, останавливается на первой ошибке
func runPipeline(inputs []string, q Quantizer, save func(*converted) error) ([]*converted, error) {
	loadedCh := make(chan *ImageData)
	quantCh := make(chan *converted)
	errCh := make(chan error, 3)
	quit := make(chan struct{})
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer close(loadedCh)
		for _, name := range inputs {
			img, err := LoadImage(name)
			if err != nil {
				errCh <- err
				return
			}
			select {
			case loadedCh <- img:
			case <-quit:
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		defer close(quantCh)
		for img := range loadedCh {
			out, err := q.Quantize(img)
			if err != nil {
				errCh <- fmt.Errorf("%s: %w", img.Name, err)
				return
			}
			select {
			case quantCh <- &converted{src: img, out: out}:
			case <-quit:
				return
			}
		}
	}()

	var results []*converted
	go func() {
		defer wg.Done()
		defer close(done)
		for c := range quantCh {
			if err := save(c); err != nil {
				errCh <- err
				return
			}
			results = append(results, c)
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-done:
	}
	close(quit)
	wg.Wait()

	if err == nil {
		select {
		case err = <-errCh:
		default:
		}
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Если `--output` не указан, используем `<input>.<format>`
func outputName(input, output, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	name := base + "." + format
	if name == input {
		name = base + "-4c." + format
	}
	return name
}

func saveImage(name, format string, m *spufile.Image) error {
	write, ok := writers[format]
	if !ok {
		return fmt.Errorf("неизвестный формат %q", format)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw, m); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printPalette(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	pal, err := pngpal.ReadPalette(f)
	if err != nil && !errors.Is(err, pngpal.ErrPrematureEOF) {
		return err
	}
	if err != nil {
		log.Printf("%s: %v", name, err)
	}
	if pal == nil {
		fmt.Fprintf(w, "%s: палитры нет\n", name)
		return nil
	}
	fmt.Fprintf(w, "%s: палитра из %d цветов\n", name, len(pal))
	for i, c := range pal {
		fmt.Fprintf(w, "%3d  #%08x  %v\n", i, uint32(c), c.Tuple())
	}
	return nil
}
