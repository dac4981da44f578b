package main

const version = "spuquant 1.0.0"

const detailedHelp = `spuquant - конвертация изображений в 4-цветные субтитровые картинки (2 бита на пиксель)

Использование:
  spuquant [опции] ФАЙЛ...
  spuquant --palette ФАЙЛ.png...

Опции:
  -o, --output=ФАЙЛ        имя выходного файла, только для одного входного
                           (по умолчанию <input>.<format>)
  -c, --count-factor=N     цвета вне четырёх самых частых занимают не более
                           1/N пикселей (по умолчанию 50)
      --strategy=ИМЯ       как редкие цвета сводятся к четырём основным:
                           nearest  ближайший цвет по --metric (по умолчанию)
                           spatial  индекс левого, верхнего или верхне-левого
                                    соседа с самым частым цветом
      --metric=ИМЯ         метрика для --strategy=nearest:
                           hsv   альфа, тон, насыщенность, яркость (по умолчанию)
                           rgba  сумма квадратов разностей каналов
  -f, --format=ИМЯ         png  PNG с палитрой (по умолчанию)
                           spu  заголовок SPUQ и индексы, сжатые zstd
                           bmp  8-битный BMP для просмотра
      --reduce             сокращать многоцветные изображения до четырёх цветов
                           методом median cut вместо ошибки
      --palette            вывести палитру каждого PNG-файла и выйти
  -s, --show               показать исходное и 4-цветное изображения
  -v, --version            показать версию и выйти
  -h, --help               показать эту справку

Алгоритм:
  1. Пиксели читаются как premultiplied ARGB и считаются в гистограмму.
  2. Гистограмма сортируется по убыванию частоты (сортировка Шелла).
  3. Изображение принимается, если пикселей вне четырёх самых частых цветов
     не более 1/count-factor от общего числа.
  4. Четыре самых частых цвета становятся палитрой, остальные цвета
     сводятся к ним выбранной стратегией.
  5. Индексы упаковываются по четыре в байт, первый пиксель в младших битах,
     каждая строка дополняется до целого байта.

Входные форматы: PNG, GIF, JPEG, PCX (8 бит), BMP (8/24 бит) и SPU.
`
