package catalog

// defaultEvents are the all-time lists served out of the box. Track cutoffs are
// in seconds, field cutoffs in metres, combined events in points.
var defaultEvents = []Event{
	{Code: "m_100", Name: "100 metres (men)", Cutoff: 10.00},
	{Code: "m_200", Name: "200 metres (men)", Cutoff: 20.20},
	{Code: "m_400", Name: "400 metres (men)", Cutoff: 44.80},
	{Code: "m_800", Name: "800 metres (men)", Cutoff: 104.00},
	{Code: "m_1500", Name: "1500 metres (men)", Cutoff: 213.00},
	{Code: "m_5000", Name: "5000 metres (men)", Cutoff: 780.00},
	{Code: "m10000", Name: "10,000 metres (men)", Cutoff: 1630.00},
	{Code: "mmara", Name: "Marathon (men)", Cutoff: 7680.00},
	{Code: "m_110h", Name: "110 metres hurdles (men)", Cutoff: 13.20},
	{Code: "m_400h", Name: "400 metres hurdles (men)", Cutoff: 48.50},
	{Code: "mhigh", Name: "High jump (men)", Cutoff: 2.30},
	{Code: "mpole", Name: "Pole vault (men)", Cutoff: 5.80},
	{Code: "mlong", Name: "Long jump (men)", Cutoff: 8.25},
	{Code: "mtrip", Name: "Triple jump (men)", Cutoff: 17.40},
	{Code: "mshot", Name: "Shot put (men)", Cutoff: 21.00},
	{Code: "mdisc", Name: "Discus throw (men)", Cutoff: 66.00},
	{Code: "mhamm", Name: "Hammer throw (men)", Cutoff: 79.00},
	{Code: "mjave", Name: "Javelin throw (men)", Cutoff: 85.00},
	{Code: "mdeca", Name: "Decathlon (men)", Cutoff: 8300},
	{Code: "w_100", Name: "100 metres (women)", Cutoff: 11.00},
	{Code: "w_200", Name: "200 metres (women)", Cutoff: 22.40},
	{Code: "w_400", Name: "400 metres (women)", Cutoff: 50.00},
	{Code: "w_800", Name: "800 metres (women)", Cutoff: 118.00},
	{Code: "w_1500", Name: "1500 metres (women)", Cutoff: 240.00},
	{Code: "w_5000", Name: "5000 metres (women)", Cutoff: 870.00},
	{Code: "w10000", Name: "10,000 metres (women)", Cutoff: 1830.00},
	{Code: "wmara", Name: "Marathon (women)", Cutoff: 8520.00},
	{Code: "w_100h", Name: "100 metres hurdles (women)", Cutoff: 12.60},
	{Code: "w_400h", Name: "400 metres hurdles (women)", Cutoff: 54.00},
	{Code: "whigh", Name: "High jump (women)", Cutoff: 1.97},
	{Code: "wpole", Name: "Pole vault (women)", Cutoff: 4.70},
	{Code: "wlong", Name: "Long jump (women)", Cutoff: 7.00},
	{Code: "wtrip", Name: "Triple jump (women)", Cutoff: 14.70},
	{Code: "wshot", Name: "Shot put (women)", Cutoff: 20.00},
	{Code: "wdisc", Name: "Discus throw (women)", Cutoff: 67.00},
	{Code: "whamm", Name: "Hammer throw (women)", Cutoff: 75.00},
	{Code: "wjave", Name: "Javelin throw (women)", Cutoff: 65.00},
	{Code: "whept", Name: "Heptathlon (women)", Cutoff: 6500},
}
