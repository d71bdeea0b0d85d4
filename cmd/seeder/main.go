package main

import (
	"bufio"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/corpus"
)

var dishes = []string{
	"Борщ с пампушками",
	"Щи из квашеной капусты",
	"Гречневая каша с грибами",
	"Сырники со сметаной",
	"Овсяная каша с ягодами",
	"Блины с творогом",
	"Плов с бараниной",
	"Пельмени домашние",
	"Салат оливье",
	"Винегрет",
	"Котлеты по-киевски",
	"Рассольник с перловкой",
	"Запеканка из цветной капусты",
	"Омлет с овощами",
	"Уха из судака",
	"Голубцы в томатном соусе",
	"Драники с луком",
	"Окрошка на квасе",
	"Лобио",
	"Хачапури по-аджарски",
	"Чечевичный суп",
	"Тыквенный крем-суп",
	"Курица с рисом",
	"Гречка по-купечески",
	"Тефтели в сливочном соусе",
}

var mainIngredients = []string{
	"курица", "говядина", "свинина", "баранина", "рыба", "грибы",
	"картофель", "капуста", "гречка", "рис", "творог", "яйца", "тыква", "фасоль",
}

var ingredients = []string{
	"лук", "морковь", "чеснок", "соль", "перец", "сметана", "масло сливочное",
	"масло растительное", "мука", "сахар", "укроп", "петрушка", "томатная паста",
	"молоко", "сыр", "лавровый лист",
}

var amounts = []string{"1 шт", "2 шт", "100 г", "200 г", "1 ст. л.", "2 ст. л.", "по вкусу"}

var diets = []string{"постное", "вегетарианское", "безглютеновое", "низкокалорийное", "постные блюда"}

var meals = []string{"завтрак", "завтраки", "обед", "ужин", "ужины", "перекус", "закуска"}

var occasions = []string{"праздничный стол", "новый год", "пикник", "на каждый день", "детское меню"}

var geographies = []string{"русская кухня", "украинская кухня", "грузинская кухня", "узбекская кухня", "европейская кухня"}

var (
	outFileName  = flag.String("out", "corpus.yaml", "corpus file to write")
	itemCount    = flag.Int("n", 200, "number of items to generate")
	seed         = flag.Uint64("seed", 1, "random seed")
	seedFileName = flag.String("src", "", "file of dish names, one per line")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile reads the non-empty lines of a file.
func linesFromFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func pick(r *rand.Rand, values []string, n int) []string {
	n = min(n, len(values))
	out := make([]string, 0, n)
	for _, i := range r.Perm(len(values))[:n] {
		out = append(out, values[i])
	}
	return out
}

// generateItems yields n random items named after names.
func generateItems(r *rand.Rand, names []string, n int) iter.Seq[*core.Item] {
	return func(yield func(*core.Item) bool) {
		for i := range n {
			item := &core.Item{
				ID:   core.ItemID(fmt.Sprintf("recipe_%04d", i)),
				Name: names[r.IntN(len(names))],
				Tags: map[core.Category][]string{
					core.CategoryMainIngredient: pick(r, mainIngredients, 1+r.IntN(2)),
					core.CategoryMeal:           pick(r, meals, 1+r.IntN(2)),
					core.CategoryGeography:      pick(r, geographies, 1),
				},
			}
			if r.IntN(3) > 0 {
				item.Tags[core.CategoryDiet] = pick(r, diets, 1)
			}
			if r.IntN(2) == 0 {
				item.Tags[core.CategoryOccasion] = pick(r, occasions, 1)
			}
			for _, name := range pick(r, ingredients, 2+r.IntN(4)) {
				item.Ingredients = append(item.Ingredients, core.Ingredient{
					Name:   name,
					Amount: amounts[r.IntN(len(amounts))],
				})
			}
			if !yield(item) {
				return
			}
		}
	}
}

func main() {
	names := dishes
	if *seedFileName != "" {
		lines, err := linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		if len(lines) > 0 {
			names = lines
		}
	}

	r := rand.New(rand.NewPCG(*seed, *seed))
	items := make([]*core.Item, 0, *itemCount)
	for item := range generateItems(r, names, *itemCount) {
		items = append(items, item)
	}

	if err := corpus.Save(*outFileName, items); err != nil {
		panic(err)
	}
	slog.Info("wrote corpus", "path", *outFileName, "items", len(items))
}
